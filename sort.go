package pixelsort

import "fmt"

// insertionCutoff is the longest segment sorted by insertion sort. Longer
// segments use the bottom-up merge.
const insertionCutoff = 12

// SortLine stably sorts every qualifying segment of line in place.
//
// scratch must be at least as long as line; its contents on return are
// unspecified. Pixels outside qualifying segments keep their positions.
// cfg.Direction, cfg.MaxShift and cfg.Seed are host-level settings and are
// ignored here.
func SortLine(line Line, cfg Config, scratch Line) error {
	if len(scratch) < len(line) {
		return fmt.Errorf("%w: scratch has %d pixels, line has %d",
			ErrInvalidBufferLength, len(scratch), len(line))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c := cfg.Resolve()
	sortLine(line, scratch, &c)
	return nil
}

// SortLineTo writes the sorted form of src into dst. dst and src must have
// equal length. src is left unchanged when it does not share memory with dst;
// when the two overlap (including dst == src) dst still receives the sorted
// form of the original src, but the shared pixels of src are overwritten.
func SortLineTo(dst, src Line, cfg Config, scratch Line) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: output has %d pixels, input has %d",
			ErrInvalidBufferLength, len(dst), len(src))
	}
	if len(scratch) < len(src) {
		return fmt.Errorf("%w: scratch has %d pixels, line has %d",
			ErrInvalidBufferLength, len(scratch), len(src))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c := cfg.Resolve()
	copy(dst, src)
	sortLine(dst, scratch, &c)
	return nil
}

// lineStats counts the work done on one line.
type lineStats struct {
	segments int
	pixels   int
}

// sortLine is the unchecked core of SortLine. c must be resolved and
// scratch at least as long as line.
func sortLine(line, scratch Line, c *Config) lineStats {
	var st lineStats
	if len(line) < 2 {
		return st
	}
	forEachSegment(line, c, func(start, end int) {
		st.segments++
		st.pixels += end - start
		sortSegment(line[start:end], scratch[start:end], c.SortKey, c.Reverse)
	})
	return st
}

// sortSegment stably orders seg by key. len(scratch) == len(seg).
func sortSegment(seg, scratch Line, key KeyFunction, reverse bool) {
	switch n := len(seg); {
	case n < 2:
		return
	case n <= insertionCutoff:
		insertionSort(seg, key, reverse)
	default:
		mergeSort(seg, scratch, key, reverse)
	}
}

// inOrder reports whether a pixel with key a may precede one with key b.
// Ties are always in order, which keeps both polarities stable.
func inOrder(a, b float64, reverse bool) bool {
	if reverse {
		return a >= b
	}
	return a <= b
}

func insertionSort(seg Line, key KeyFunction, reverse bool) {
	for i := 1; i < len(seg); i++ {
		p := seg[i]
		k := EvaluateKey(p, key)
		j := i
		for j > 0 && !inOrder(EvaluateKey(seg[j-1], key), k, reverse) {
			seg[j] = seg[j-1]
			j--
		}
		seg[j] = p
	}
}

// mergeSort is a bottom-up merge over block widths 1, 2, 4, ... Each pass
// merges adjacent blocks into scratch and copies the result back.
func mergeSort(seg, scratch Line, key KeyFunction, reverse bool) {
	n := len(seg)
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			merge(scratch[lo:hi], seg[lo:mid], seg[mid:hi], key, reverse)
		}
		copy(seg, scratch[:n])
	}
}

// merge writes the stable merge of left and right into dst.
// len(dst) == len(left) + len(right).
func merge(dst, left, right Line, key KeyFunction, reverse bool) {
	if len(right) == 0 {
		copy(dst, left)
		return
	}
	i, j, k := 0, 0, 0
	kl := EvaluateKey(left[0], key)
	kr := EvaluateKey(right[0], key)
	for i < len(left) && j < len(right) {
		if inOrder(kl, kr, reverse) {
			dst[k] = left[i]
			i++
			if i < len(left) {
				kl = EvaluateKey(left[i], key)
			}
		} else {
			dst[k] = right[j]
			j++
			if j < len(right) {
				kr = EvaluateKey(right[j], key)
			}
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
}

// Sorter sorts lines under a fixed Config, reusing one scratch buffer.
// A Sorter is not safe for concurrent use; give each goroutine its own.
type Sorter struct {
	cfg     Config
	scratch Line
}

// NewSorter validates cfg and returns a Sorter for it.
func NewSorter(cfg Config) (*Sorter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sorter{cfg: cfg.Resolve()}, nil
}

// Config returns the resolved configuration.
func (s *Sorter) Config() Config {
	return s.cfg
}

// Sort sorts line in place, growing the scratch buffer when needed.
// It returns the number of segments sorted.
func (s *Sorter) Sort(line Line) int {
	return s.sort(line).segments
}

// SortTo writes the sorted form of src into dst.
func (s *Sorter) SortTo(dst, src Line) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: output has %d pixels, input has %d",
			ErrInvalidBufferLength, len(dst), len(src))
	}
	copy(dst, src)
	s.sort(dst)
	return nil
}

func (s *Sorter) sort(line Line) lineStats {
	s.grow(len(line))
	return sortLine(line, s.scratch, &s.cfg)
}

func (s *Sorter) grow(n int) {
	if cap(s.scratch) < n {
		s.scratch = make(Line, n)
	}
	s.scratch = s.scratch[:n]
}
