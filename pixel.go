package pixelsort

import (
	"image/color"

	icolor "github.com/gogpu/pixelsort/internal/color"
)

// Pixel is a straight-alpha RGBA value with each channel nominally in [0, 1].
//
// Pixels are plain values: sorting moves whole pixels and never rewrites
// individual channels.
type Pixel struct {
	R, G, B, A float64
}

// RGB creates an opaque pixel from RGB components.
func RGB(r, g, b float64) Pixel {
	return Pixel{R: r, G: g, B: b, A: 1}
}

// PixelFromColor converts a standard color.Color to a Pixel.
// The conversion goes through 16-bit non-premultiplied values, so 8-bit and
// 16-bit sources both round-trip exactly.
func PixelFromColor(c color.Color) Pixel {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Pixel{
		R: icolor.U16ToUnit(n.R),
		G: icolor.U16ToUnit(n.G),
		B: icolor.U16ToUnit(n.B),
		A: icolor.U16ToUnit(n.A),
	}
}

// NRGBA converts the pixel to an 8-bit non-premultiplied color.
// Channels outside [0, 1] are clamped.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: icolor.UnitToU8(p.R),
		G: icolor.UnitToU8(p.G),
		B: icolor.UnitToU8(p.B),
		A: icolor.UnitToU8(p.A),
	}
}

// NRGBA64 converts the pixel to a 16-bit non-premultiplied color.
// Channels outside [0, 1] are clamped.
func (p Pixel) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{
		R: icolor.UnitToU16(p.R),
		G: icolor.UnitToU16(p.G),
		B: icolor.UnitToU16(p.B),
		A: icolor.UnitToU16(p.A),
	}
}

// RGBA implements the color.Color interface.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return p.NRGBA64().RGBA()
}

// Line is one row or column of pixels. Its length is fixed for the duration
// of a sort call.
type Line []Pixel
