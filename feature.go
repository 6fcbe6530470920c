package meanshift

import (
	"errors"
	"math"
)

// ErrEmptyAverage is returned by Average when given no vectors.
var ErrEmptyAverage = errors.New("meanshift: average of empty set")

// Feature is a point in the joint spatial+color feature space.
//
// X and Y are the pixel column and row. L, A and B are the color channels in
// CIE L*a*b* units (L in [0,100], a and b roughly in [-128,127]).
// Feature is a plain value; operations return new values and never modify
// their arguments.
type Feature struct {
	X, Y    float64
	L, A, B float64
}

// ColorDistance returns the Euclidean distance between a and b over the
// color channels only.
func ColorDistance(a, b Feature) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// SpatialDistance returns the Euclidean distance between a and b over the
// spatial channels only.
func SpatialDistance(a, b Feature) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Average returns the component-wise arithmetic mean of vs.
// Returns ErrEmptyAverage if vs is empty.
func Average(vs []Feature) (Feature, error) {
	if len(vs) == 0 {
		return Feature{}, ErrEmptyAverage
	}
	var acc accumulator
	for _, v := range vs {
		acc.add(v)
	}
	return acc.mean(), nil
}

// accumulator sums feature vectors without allocating.
// The zero value is an empty sum.
type accumulator struct {
	sum   Feature
	count int
}

func (a *accumulator) add(f Feature) {
	a.sum.X += f.X
	a.sum.Y += f.Y
	a.sum.L += f.L
	a.sum.A += f.A
	a.sum.B += f.B
	a.count++
}

// mean divides the running sum by the count. Callers must check count first.
func (a *accumulator) mean() Feature {
	n := float64(a.count)
	return Feature{
		X: a.sum.X / n,
		Y: a.sum.Y / n,
		L: a.sum.L / n,
		A: a.sum.A / n,
		B: a.sum.B / n,
	}
}
