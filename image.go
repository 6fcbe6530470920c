package meanshift

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/meanshift/internal/color"
)

// Bridge errors.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("meanshift: invalid dimensions")

	// ErrPixelDataSize is returned when a pixel buffer does not hold exactly
	// width*height pixels.
	ErrPixelDataSize = errors.New("meanshift: pixel data size does not match dimensions")
)

// Lab8BytesPerPixel is the size of one pixel in the 8-bit Lab packing.
const Lab8BytesPerPixel = 3

// NewGridFromLab8 builds a grid from interleaved 8-bit Lab pixels, three
// bytes (L, a, b) per pixel in row-major order. Channels are decoded as
// L = L8*100/255, a = a8-128, b = b8-128.
func NewGridFromLab8(width, height int, pix []uint8) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(pix) != width*height*Lab8BytesPerPixel {
		return nil, fmt.Errorf("%w: want %d bytes for %dx%d, got %d",
			ErrPixelDataSize, width*height*Lab8BytesPerPixel, width, height, len(pix))
	}

	g := NewGrid(height, width)
	for i := range g.cells {
		off := i * Lab8BytesPerPixel
		lab := color.Lab8{L: pix[off], A: pix[off+1], B: pix[off+2]}.Unpack()
		g.cells[i] = Feature{
			X: float64(i % width),
			Y: float64(i / width),
			L: lab.L,
			A: lab.A,
			B: lab.B,
		}
	}
	return g, nil
}

// Lab8 returns the grid's colors in the 8-bit Lab packing, three bytes per
// cell in row-major order. Channels are rounded and saturated.
func (g *Grid) Lab8() []uint8 {
	pix := make([]uint8, len(g.cells)*Lab8BytesPerPixel)
	for i, f := range g.cells {
		c := color.Lab{L: f.L, A: f.A, B: f.B}.Pack()
		off := i * Lab8BytesPerPixel
		pix[off+0] = c.L
		pix[off+1] = c.A
		pix[off+2] = c.B
	}
	return pix
}

// GridFromImage converts img to a feature grid. Each pixel is converted from
// sRGB to 8-bit Lab and then decoded, so the grid holds the same discrete
// values an 8-bit Lab image would. Alpha is ignored.
// An empty image yields an empty grid.
func GridFromImage(img image.Image) *Grid {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return NewGrid(0, 0)
	}

	g := NewGrid(height, width)
	for y := range height {
		for x := range width {
			r, gr, bl := rgb8(img, b.Min.X+x, b.Min.Y+y)
			lab := color.RGBToLab8(r, gr, bl).Unpack()
			g.cells[y*width+x] = Feature{
				X: float64(x),
				Y: float64(y),
				L: lab.L,
				A: lab.A,
				B: lab.B,
			}
		}
	}
	return g
}

// ToImage converts the grid's colors back to an opaque sRGB image, going
// through the 8-bit Lab packing.
func (g *Grid) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.cols, g.rows))
	for i, f := range g.cells {
		lab8 := color.Lab{L: f.L, A: f.A, B: f.B}.Pack()
		r, gr, bl := color.Lab8ToRGB(lab8)
		off := (i/g.cols)*img.Stride + (i%g.cols)*4
		img.Pix[off+0] = r
		img.Pix[off+1] = gr
		img.Pix[off+2] = bl
		img.Pix[off+3] = 255
	}
	return img
}

// rgb8 returns the 8-bit, non-premultiplied color of img at (x, y).
func rgb8(img image.Image, x, y int) (r, g, b uint8) {
	switch src := img.(type) {
	case *image.NRGBA:
		c := src.NRGBAAt(x, y)
		return c.R, c.G, c.B
	case *image.RGBA:
		c := src.RGBAAt(x, y)
		if c.A == 0 || c.A == 255 {
			return c.R, c.G, c.B
		}
	}
	r32, g32, b32, a32 := img.At(x, y).RGBA()
	if a32 == 0 {
		return 0, 0, 0
	}
	// Un-premultiply before dropping alpha.
	return uint8(r32 * 0xffff / a32 >> 8), uint8(g32 * 0xffff / a32 >> 8), uint8(b32 * 0xffff / a32 >> 8)
}
