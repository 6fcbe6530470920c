// Package color converts between 8-bit sRGB and CIE L*a*b* for the
// mean-shift filter.
//
// Lab values are carried in two forms:
//   - Lab: floating point, L in [0,100] and a, b roughly in [-128,127]
//   - Lab8: the common 8-bit packing (L scaled to [0,255], a and b offset
//     by 128)
//
// The XYZ and Lab math is delegated to go-colorful (D65 white point);
// sRGB transfer functions use lookup tables.
package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Lab is a color in CIE L*a*b* units.
type Lab struct {
	L, A, B float64
}

// Lab8 is a Lab color packed into three bytes.
type Lab8 struct {
	L, A, B uint8
}

// Unpack converts the 8-bit packing to Lab units:
// L = L8*100/255, a = a8-128, b = b8-128.
func (c Lab8) Unpack() Lab {
	return Lab{
		L: float64(c.L) * 100 / 255,
		A: float64(c.A) - 128,
		B: float64(c.B) - 128,
	}
}

// Pack converts Lab units to the 8-bit packing, rounding to nearest and
// saturating each channel to [0,255].
func (c Lab) Pack() Lab8 {
	return Lab8{
		L: saturate(c.L * 255 / 100),
		A: saturate(c.A + 128),
		B: saturate(c.B + 128),
	}
}

// FromRGB converts an 8-bit sRGB color to Lab.
func FromRGB(r, g, b uint8) Lab {
	x, y, z := colorful.LinearRgbToXyz(DecodeSRGB(r), DecodeSRGB(g), DecodeSRGB(b))
	l, a, bb := colorful.XyzToLab(x, y, z)
	// go-colorful works in hundredths of the usual Lab units.
	return Lab{L: l * 100, A: a * 100, B: bb * 100}
}

// RGB converts c to 8-bit sRGB. Out-of-gamut colors are clipped per channel.
func (c Lab) RGB() (r, g, b uint8) {
	x, y, z := colorful.LabToXyz(c.L/100, c.A/100, c.B/100)
	lr, lg, lb := colorful.XyzToLinearRgb(x, y, z)
	return EncodeSRGB(lr), EncodeSRGB(lg), EncodeSRGB(lb)
}

// RGBToLab8 converts an 8-bit sRGB color directly to the 8-bit Lab packing.
func RGBToLab8(r, g, b uint8) Lab8 {
	return FromRGB(r, g, b).Pack()
}

// Lab8ToRGB converts the 8-bit Lab packing to 8-bit sRGB.
func Lab8ToRGB(c Lab8) (r, g, b uint8) {
	return c.Unpack().RGB()
}

func saturate(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	n := math.Round(v)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
