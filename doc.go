// Package pixelsort implements threshold-segmented pixel sorting.
//
// # Overview
//
// Pixel sorting cuts an image into lines (rows or columns), finds runs of
// pixels that pass a threshold test, and reorders the pixels inside each run
// by a color key. Pixels outside the runs stay where they are, which gives
// the characteristic streaked look.
//
// # Quick Start
//
//	img, _, _ := image.Decode(f)
//
//	cfg := pixelsort.Config{
//	    SortKey:      pixelsort.Hue,
//	    ThresholdKey: pixelsort.Luminance,
//	    Threshold:    0.4, // segment pixels with luminance >= 0.4
//	}
//	out, stats, err := pixelsort.SortImage(ctx, img, cfg)
//
// # Line Sorting
//
// The core is SortLine, which works on a single Line with a caller-owned
// scratch buffer and has no shared state. It is safe to call from many
// goroutines as long as each has its own scratch buffer. Sorter wraps the
// same operation with a reusable buffer.
//
// Segments are sorted stably with a bottom-up merge sort: pixels with equal
// keys keep their relative order, in both ascending and Reverse order.
//
// # Key Functions
//
// EvaluateKey maps a Pixel to a scalar. Luminance uses BT.709 weights; Hue
// and Saturation follow HSL and are defined as 0 for gray pixels. White and
// Black both evaluate max(R, G, B); they differ only in the threshold
// polarity they are normally paired with.
//
// # Images
//
// Raster holds a float copy of an image. Apply sorts it in place along
// Config.Direction, spreading bands of lines over a worker pool and checking
// the context between lines. SortRawChannel and ApplyRawChannel reproduce
// the early byte-level sort that orders the first channel of each pixel
// without any color model.
package pixelsort
