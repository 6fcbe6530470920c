package meanshift

import "math/rand/v2"

// Test helper functions shared across package tests.

// uniformGrid creates a grid in which every cell has the same color.
func uniformGrid(rows, cols int, l, a, b float64) *Grid {
	return NewGridFromColors(rows, cols, func(int, int) (float64, float64, float64) {
		return l, a, b
	})
}

// twoRegionGrid creates a grid whose left half has lightness left and whose
// right half has lightness right. Chroma is zero everywhere.
func twoRegionGrid(rows, cols int, left, right float64) *Grid {
	return NewGridFromColors(rows, cols, func(_, col int) (float64, float64, float64) {
		if col < cols/2 {
			return left, 0, 0
		}
		return right, 0, 0
	})
}

// randomGrid creates a grid of random 8-bit Lab pixels from a fixed seed.
// Each 4x4 block shares a base color so that neighborhoods are non-trivial.
func randomGrid(rows, cols int, seed uint64) *Grid {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pix := make([]uint8, rows*cols*Lab8BytesPerPixel)

	base := make(map[[2]int][3]int)
	for row := range rows {
		for col := range cols {
			key := [2]int{row / 4, col / 4}
			c, ok := base[key]
			if !ok {
				c = [3]int{rng.IntN(256), rng.IntN(256), rng.IntN(256)}
				base[key] = c
			}
			off := (row*cols + col) * Lab8BytesPerPixel
			for ch := range 3 {
				v := c[ch] + rng.IntN(21) - 10
				pix[off+ch] = uint8(min(max(v, 0), 255))
			}
		}
	}

	g, err := NewGridFromLab8(cols, rows, pix)
	if err != nil {
		panic(err)
	}
	return g
}

// colorsEqual reports whether two features have bit-identical colors.
func colorsEqual(a, b Feature) bool {
	return a.L == b.L && a.A == b.A && a.B == b.B
}

// testConfig returns a small, valid configuration.
func testConfig() Config {
	return Config{
		SpatialRadius:    2,
		ColorRadius:      16,
		MaxIter:          10,
		ColorTolerance:   0.3,
		SpatialTolerance: 0.3,
	}
}
