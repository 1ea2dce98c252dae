package pixelsort

import (
	"image"
	"image/color"

	icolor "github.com/gogpu/pixelsort/internal/color"
)

// Raster is a rectangular buffer of float pixels in row-major order.
// It is the in-memory form the host layer sorts; rows are exposed as Lines
// without copying.
type Raster struct {
	width  int
	height int
	pix    []Pixel
}

// NewRaster creates a raster of transparent black pixels.
// Negative dimensions are treated as zero.
func NewRaster(width, height int) *Raster {
	width = max(width, 0)
	height = max(height, 0)
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}
}

// RasterFromImage copies img into a new raster. The result's origin is the
// top-left corner of img.Bounds().
func RasterFromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy())

	switch src := img.(type) {
	case *image.NRGBA:
		for y := range r.height {
			row := src.Pix[y*src.Stride : y*src.Stride+r.width*4]
			dst := r.Row(y)
			for x := range dst {
				s := row[x*4 : x*4+4 : x*4+4]
				dst[x] = Pixel{
					R: icolor.U8ToUnit(s[0]),
					G: icolor.U8ToUnit(s[1]),
					B: icolor.U8ToUnit(s[2]),
					A: icolor.U8ToUnit(s[3]),
				}
			}
		}
	default:
		for y := range r.height {
			dst := r.Row(y)
			for x := range dst {
				dst[x] = PixelFromColor(img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
	}
	return r
}

// Width returns the width of the raster.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the height of the raster.
func (r *Raster) Height() int {
	return r.height
}

// Pixel returns the pixel at (x, y), or the zero Pixel when out of bounds.
func (r *Raster) Pixel(x, y int) Pixel {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return Pixel{}
	}
	return r.pix[y*r.width+x]
}

// SetPixel sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (r *Raster) SetPixel(x, y int, p Pixel) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.pix[y*r.width+x] = p
}

// Row returns row y as a Line that aliases the raster's storage.
func (r *Raster) Row(y int) Line {
	return r.pix[y*r.width : (y+1)*r.width : (y+1)*r.width]
}

// Column copies column x into dst, reallocating when dst is too short, and
// returns the filled line.
func (r *Raster) Column(x int, dst Line) Line {
	if cap(dst) < r.height {
		dst = make(Line, r.height)
	}
	dst = dst[:r.height]
	for y := range dst {
		dst[y] = r.pix[y*r.width+x]
	}
	return dst
}

// SetColumn writes src into column x. len(src) must equal Height.
func (r *Raster) SetColumn(x int, src Line) {
	for y, p := range src[:r.height] {
		r.pix[y*r.width+x] = p
	}
}

// Lines returns the number of lines along d.
func (r *Raster) Lines(d Direction) int {
	if d == Vertical {
		return r.width
	}
	return r.height
}

// LineLen returns the length of each line along d.
func (r *Raster) LineLen(d Direction) int {
	if d == Vertical {
		return r.height
	}
	return r.width
}

// ToNRGBA converts the raster to an 8-bit image.NRGBA.
func (r *Raster) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	for i, p := range r.pix {
		s := img.Pix[i*4 : i*4+4 : i*4+4]
		s[0] = icolor.UnitToU8(p.R)
		s[1] = icolor.UnitToU8(p.G)
		s[2] = icolor.UnitToU8(p.B)
		s[3] = icolor.UnitToU8(p.A)
	}
	return img
}

// ToNRGBA64 converts the raster to a 16-bit image.NRGBA64.
func (r *Raster) ToNRGBA64() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, r.width, r.height))
	for y := range r.height {
		for x, p := range r.Row(y) {
			img.SetNRGBA64(x, y, p.NRGBA64())
		}
	}
	return img
}

// At implements the image.Image interface.
func (r *Raster) At(x, y int) color.Color {
	return r.Pixel(x, y).NRGBA64()
}

// Bounds implements the image.Image interface.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// ColorModel implements the image.Image interface.
func (r *Raster) ColorModel() color.Model {
	return color.NRGBA64Model
}
