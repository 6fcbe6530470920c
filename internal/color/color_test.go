package color

import (
	"math"
	"testing"
)

func TestLab8UnpackConstants(t *testing.T) {
	tests := []struct {
		name string
		in   Lab8
		want Lab
	}{
		{"zero", Lab8{0, 0, 0}, Lab{0, -128, -128}},
		{"neutral white", Lab8{255, 128, 128}, Lab{100, 0, 0}},
		{"mid", Lab8{51, 200, 10}, Lab{20, 72, -118}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Unpack()
			if !near(got.L, tt.want.L, 1e-9) || got.A != tt.want.A || got.B != tt.want.B {
				t.Errorf("Unpack(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// TestLab8RoundTrip checks that every 8-bit channel value survives
// Unpack followed by Pack.
func TestLab8RoundTrip(t *testing.T) {
	for i := 0; i <= 255; i++ {
		v := uint8(i)
		in := Lab8{L: v, A: v, B: 255 - v}
		if got := in.Unpack().Pack(); got != in {
			t.Errorf("Pack(Unpack(%v)) = %v", in, got)
		}
	}
}

func TestPackSaturates(t *testing.T) {
	tests := []struct {
		name string
		in   Lab
		want Lab8
	}{
		{"above range", Lab{L: 120, A: 200, B: 300}, Lab8{255, 255, 255}},
		{"below range", Lab{L: -5, A: -200, B: -129}, Lab8{0, 0, 0}},
		{"rounds to nearest", Lab{L: 50, A: 0.5, B: -0.4}, Lab8{128, 129, 128}},
		{"nan", Lab{L: math.NaN(), A: 0, B: 0}, Lab8{0, 128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Pack(); got != tt.want {
				t.Errorf("Pack(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromRGBReferenceColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    Lab
	}{
		{"black", 0, 0, 0, Lab{0, 0, 0}},
		{"white", 255, 255, 255, Lab{100, 0, 0}},
		{"red", 255, 0, 0, Lab{53.24, 80.09, 67.20}},
		{"green", 0, 255, 0, Lab{87.73, -86.18, 83.18}},
		{"blue", 0, 0, 255, Lab{32.30, 79.19, -107.86}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromRGB(tt.r, tt.g, tt.b)
			if !near(got.L, tt.want.L, 0.5) || !near(got.A, tt.want.A, 0.5) || !near(got.B, tt.want.B, 0.5) {
				t.Errorf("FromRGB(%d,%d,%d) = %+v, want ~%+v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestRGBRoundTrip(t *testing.T) {
	colors := [][3]uint8{
		{0, 0, 0}, {255, 255, 255}, {128, 128, 128}, {17, 17, 17},
		{255, 0, 0}, {0, 255, 0}, {0, 0, 255},
		{200, 120, 40}, {12, 90, 200},
	}

	for _, c := range colors {
		r, g, b := FromRGB(c[0], c[1], c[2]).RGB()
		if absDiff(r, c[0]) > 1 || absDiff(g, c[1]) > 1 || absDiff(b, c[2]) > 1 {
			t.Errorf("RGB(FromRGB(%v)) = (%d,%d,%d)", c, r, g, b)
		}
	}
}

// TestRGBRoundTripThroughLab8 allows a few levels of error from the 8-bit
// quantization of L, a and b.
func TestRGBRoundTripThroughLab8(t *testing.T) {
	for v := 0; v <= 255; v += 5 {
		gray := uint8(v)
		r, g, b := Lab8ToRGB(RGBToLab8(gray, gray, gray))
		if absDiff(r, gray) > 2 || absDiff(g, gray) > 2 || absDiff(b, gray) > 2 {
			t.Errorf("gray %d round-tripped to (%d,%d,%d)", v, r, g, b)
		}
	}

	primaries := [][3]uint8{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	for _, c := range primaries {
		r, g, b := Lab8ToRGB(RGBToLab8(c[0], c[1], c[2]))
		if absDiff(r, c[0]) > 4 || absDiff(g, c[1]) > 4 || absDiff(b, c[2]) > 4 {
			t.Errorf("%v round-tripped to (%d,%d,%d)", c, r, g, b)
		}
	}
}

func TestOutOfGamutClips(t *testing.T) {
	r, g, b := Lab{L: 100, A: 127, B: -128}.RGB()
	// Must not wrap around: a very saturated magenta-blue stays bright in R and B.
	if r < 200 || b < 200 {
		t.Errorf("out-of-gamut color clipped to (%d,%d,%d)", r, g, b)
	}
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
