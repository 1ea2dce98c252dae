package pixelsort

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/pixelsort/internal/parallel"
)

// SortRawChannel applies the legacy byte sort to one row of interleaved
// channel bytes (1 to 4 channels per pixel).
//
// It is an insertion sort on the first byte of every pixel: those bytes are
// compared and swapped with stride channels while every other byte stays
// where it is. No color model is involved, so the effect differs visibly
// from SortLine.
func SortRawChannel(row []byte, channels int) error {
	if channels < 1 || channels > 4 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if len(row)%channels != 0 {
		return fmt.Errorf("%w: row of %d bytes is not a multiple of %d", ErrInvalidChannels, len(row), channels)
	}

	for i := 0; i < len(row); i += channels {
		for j := i; j > 0 && row[j-channels] > row[j]; j -= channels {
			row[j-channels], row[j] = row[j], row[j-channels]
		}
	}
	return nil
}

// ApplyRawChannel runs SortRawChannel over every row of img in place, with
// 4 channels per pixel, so only the red bytes move.
func ApplyRawChannel(ctx context.Context, img *image.NRGBA, opts ...Option) (Stats, error) {
	if img == nil {
		return Stats{}, ErrNilRaster
	}
	o := buildOptions(opts)
	b := img.Bounds()
	h, w := b.Dy(), b.Dx()
	if h == 0 || w == 0 {
		return Stats{}, nil
	}

	pool := parallel.NewLinePool(o.workers)
	defer pool.Close()

	Logger().Debug("pixelsort: legacy channel sort", "width", w, "height", h, "workers", pool.Workers())

	var stats statsCounter
	progress := &progressTracker{total: h, fn: o.progress}

	pool.ForEachBand(h, func(band parallel.Band) {
		lines := 0
		for y := band.Start; y < band.End; y++ {
			if ctx.Err() != nil {
				break
			}
			off := y * img.Stride
			// Cannot fail: 4 channels and a whole number of pixels.
			_ = SortRawChannel(img.Pix[off:off+w*4], 4)
			lines++
		}
		stats.add(lines, lineStats{segments: lines, pixels: lines * w})
		progress.advance(lines)
	})

	result := stats.snapshot()
	if err := ctx.Err(); err != nil && result.Lines < h {
		Logger().Warn("pixelsort: legacy sort interrupted", "rows", result.Lines, "total", h, "err", err)
		return result, fmt.Errorf("pixelsort: interrupted after %d of %d rows: %w", result.Lines, h, err)
	}
	return result, nil
}
