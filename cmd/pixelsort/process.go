package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register the WebP decoder with the image package

	"github.com/gogpu/pixelsort"
)

// errUnsupportedFormat is returned for output extensions with no encoder.
var errUnsupportedFormat = errors.New("unsupported output format")

// result describes one processed file.
type result struct {
	output string
	stats  pixelsort.Stats
}

func processFile(ctx context.Context, path string, s *settings, log *slog.Logger) (result, error) {
	src, format, err := loadImage(path)
	if err != nil {
		return result{}, err
	}
	log.Debug("decoded", "path", path, "format", format, "bounds", src.Bounds())

	progress := pixelsort.WithProgress(decileLogger(log, path))
	workers := pixelsort.WithWorkers(s.workers)

	var (
		out   image.Image
		stats pixelsort.Stats
	)
	if s.legacy {
		nrgba := toNRGBA(src)
		stats, err = pixelsort.ApplyRawChannel(ctx, nrgba, workers, progress)
		out = nrgba
	} else {
		r := pixelsort.RasterFromImage(src)
		stats, err = pixelsort.Apply(ctx, r, s.cfg, workers, progress)
		if is16Bit(src.ColorModel()) {
			out = r.ToNRGBA64()
		} else {
			out = r.ToNRGBA()
		}
	}
	if err != nil {
		return result{}, err
	}

	if s.scale < 1 {
		out = scaleImage(out, s.scale)
	}

	dst := outputPath(path, s.outDir, s.suffix)
	if err := saveImage(dst, out); err != nil {
		return result{}, err
	}
	return result{output: dst, stats: stats}, nil
}

// loadImage decodes any registered format: PNG, JPEG, GIF, BMP, TIFF, WebP.
func loadImage(path string) (image.Image, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	return img, format, nil
}

// outputPath maps in/photo.jpg to dir/photo_sorted.jpg. Inputs whose
// format has no encoder here (WebP, unknown) are written as PNG.
func outputPath(in, dir, suffix string) string {
	base := filepath.Base(in)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
	default:
		ext = ".png"
	}
	return filepath.Join(dir, name+suffix+ext)
}

func saveImage(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if err := encodeImage(f, filepath.Ext(path), img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func encodeImage(w io.Writer, ext string, img image.Image) error {
	var err error
	switch strings.ToLower(ext) {
	case ".png":
		err = png.Encode(w, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".gif":
		err = gif.Encode(w, img, nil)
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", errUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", ext, err)
	}
	return nil
}

// toNRGBA copies img into a new *image.NRGBA with origin (0, 0).
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

func is16Bit(m color.Model) bool {
	switch m {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model:
		return true
	}
	return false
}

// scaleImage resamples img by factor with Catmull-Rom filtering.
func scaleImage(img image.Image, factor float64) image.Image {
	b := img.Bounds()
	w := max(int(float64(b.Dx())*factor+0.5), 1)
	h := max(int(float64(b.Dy())*factor+0.5), 1)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// decileLogger returns a progress callback that logs every 10% at debug
// level.
func decileLogger(log *slog.Logger, path string) pixelsort.ProgressFunc {
	last := -1
	return func(done, total int) {
		d := done * 10 / total
		if d == last {
			return
		}
		last = d
		log.Debug("progress", "path", path, "done", done, "total", total)
	}
}
