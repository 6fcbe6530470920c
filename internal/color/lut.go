package color

import "math"

// decodeLUT maps an 8-bit sRGB component to linear light in [0,1].
var decodeLUT [256]float64

// encodeLUT maps linear light quantized to 12 bits back to 8-bit sRGB.
// 4096 entries keep every 8-bit output reachable.
var encodeLUT [4096]uint8

func init() {
	for i := range decodeLUT {
		decodeLUT[i] = srgbToLinear(float64(i) / 255)
	}
	for i := range encodeLUT {
		encodeLUT[i] = quantize(linearToSRGB(float64(i) / 4095))
	}
}

// DecodeSRGB converts an 8-bit sRGB component to linear light in [0,1].
func DecodeSRGB(s uint8) float64 {
	return decodeLUT[s]
}

// EncodeSRGB converts linear light to an 8-bit sRGB component.
// Input outside [0,1] is clamped.
func EncodeSRGB(l float64) uint8 {
	if !(l > 0) {
		return 0
	}
	if l >= 1 {
		return 255
	}
	return encodeLUT[int(l*4095+0.5)]
}

// srgbToLinear is the sRGB EOTF on [0,1].
func srgbToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// linearToSRGB is the sRGB OETF on [0,1].
func linearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// quantize maps [0,1] to [0,255] with rounding and saturation.
func quantize(v float64) uint8 {
	n := math.Round(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
