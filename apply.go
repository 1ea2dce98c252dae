package pixelsort

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/pixelsort/internal/parallel"
)

// Stats summarizes one run over an image.
type Stats struct {
	// Lines is the number of lines processed.
	Lines int
	// Segments is the number of qualifying segments sorted.
	Segments int
	// SortedPixels is the number of pixels inside sorted segments.
	SortedPixels int
}

// statsCounter accumulates Stats from concurrent bands.
type statsCounter struct {
	lines, segments, pixels atomic.Int64
}

func (s *statsCounter) add(lines int, st lineStats) {
	s.lines.Add(int64(lines))
	s.segments.Add(int64(st.segments))
	s.pixels.Add(int64(st.pixels))
}

func (s *statsCounter) snapshot() Stats {
	return Stats{
		Lines:        int(s.lines.Load()),
		Segments:     int(s.segments.Load()),
		SortedPixels: int(s.pixels.Load()),
	}
}

// progressTracker serializes progress callbacks.
type progressTracker struct {
	mu    sync.Mutex
	done  int
	total int
	fn    ProgressFunc
}

func (p *progressTracker) advance(n int) {
	if p.fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done += n
	p.fn(p.done, p.total)
}

// Apply sorts every line of r along cfg.Direction in place.
//
// Lines are grouped into bands and spread over a worker pool; each band owns
// its scratch buffer. ctx is checked between lines: a cancelled run leaves
// every line either fully sorted or untouched and returns the context error
// together with the partial Stats. A cancellation that arrives after the last
// line is not an error.
func Apply(ctx context.Context, r *Raster, cfg Config, opts ...Option) (Stats, error) {
	if r == nil {
		return Stats{}, ErrNilRaster
	}
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}
	c := cfg.Resolve()
	o := buildOptions(opts)

	n := r.Lines(c.Direction)
	lineLen := r.LineLen(c.Direction)
	if n == 0 || lineLen == 0 {
		return Stats{}, nil
	}

	pool := parallel.NewLinePool(o.workers)
	defer pool.Close()

	log := Logger()
	log.Debug("pixelsort: apply",
		"width", r.Width(),
		"height", r.Height(),
		"direction", c.Direction,
		"sort_key", c.SortKey,
		"threshold_key", c.ThresholdKey,
		"threshold", c.Threshold,
		"workers", pool.Workers())

	var stats statsCounter
	progress := &progressTracker{total: n, fn: o.progress}

	pool.ForEachBand(n, func(b parallel.Band) {
		scratch := make(Line, lineLen)
		var column Line
		lines := 0
		var acc lineStats

		for i := b.Start; i < b.End; i++ {
			if ctx.Err() != nil {
				break
			}
			var line Line
			if c.Direction == Vertical {
				column = r.Column(i, column)
				line = column
			} else {
				line = r.Row(i)
			}

			rotateLeft(line, lineShift(c.Seed, i, c.MaxShift, len(line)))
			st := sortLine(line, scratch, &c)

			if c.Direction == Vertical {
				r.SetColumn(i, line)
			}
			lines++
			acc.segments += st.segments
			acc.pixels += st.pixels
		}

		stats.add(lines, acc)
		progress.advance(lines)
	})

	result := stats.snapshot()
	if err := ctx.Err(); err != nil && result.Lines < n {
		log.Warn("pixelsort: apply interrupted", "lines", result.Lines, "total", n, "err", err)
		return result, fmt.Errorf("pixelsort: interrupted after %d of %d lines: %w", result.Lines, n, err)
	}

	log.Debug("pixelsort: apply done",
		"lines", result.Lines,
		"segments", result.Segments,
		"sorted_pixels", result.SortedPixels)
	return result, nil
}

// SortImage copies img into a Raster, sorts it with Apply and returns the
// result as a 16-bit image whose origin is (0, 0).
func SortImage(ctx context.Context, img image.Image, cfg Config, opts ...Option) (*image.NRGBA64, Stats, error) {
	if img == nil {
		return nil, Stats{}, ErrNilRaster
	}
	r := RasterFromImage(img)
	stats, err := Apply(ctx, r, cfg, opts...)
	if err != nil {
		return nil, stats, err
	}
	return r.ToNRGBA64(), stats, nil
}
