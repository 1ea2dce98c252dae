package pixelsort

// Segment is a half-open range [Start, End) of a line whose pixels all pass
// the threshold test. Segments returned by this package are never empty.
type Segment struct {
	Start, End int
}

// Len returns the number of pixels in the segment.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Segments returns the maximal runs of line that qualify under cfg, in
// order. A run reaching the end of the line is closed at len(line).
func Segments(line Line, cfg Config) ([]Segment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := cfg.Resolve()

	var segs []Segment
	forEachSegment(line, &c, func(start, end int) {
		segs = append(segs, Segment{Start: start, End: end})
	})
	return segs, nil
}

// forEachSegment scans line once and calls fn for every qualifying run as
// soon as the run closes. fn may reorder pixels inside [start, end); it must
// not touch pixels at or after end.
func forEachSegment(line Line, c *Config, fn func(start, end int)) {
	inRun := false
	start := 0

	for j := range line {
		if c.qualifies(line[j]) {
			if !inRun {
				inRun = true
				start = j
			}
			continue
		}
		if inRun {
			fn(start, j)
			inRun = false
		}
	}

	// A run touching the last pixel never sees a failing pixel.
	if inRun {
		fn(start, len(line))
	}
}
