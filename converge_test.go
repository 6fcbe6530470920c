package meanshift

import (
	"math"
	"testing"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Iterating, "iterating"},
		{Converged, "converged"},
		{Exhausted, "exhausted"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestReasonString(t *testing.T) {
	tests := []struct {
		r    Reason
		want string
	}{
		{ReasonNone, "none"},
		{ReasonIterationCap, "iteration-cap"},
		{ReasonEmptyNeighborhood, "empty-neighborhood"},
		{Reason(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Reason(%d).String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}

// TestConvergeFixedPoint checks that a pixel whose neighborhood has neither
// color nor spatial spread around it converges to itself in one iteration.
func TestConvergeFixedPoint(t *testing.T) {
	src := uniformGrid(7, 7, 50, 10, -20)
	cfg := testConfig()
	start := src.At(3, 3)

	r := converge(start, src, &cfg)
	if r.State != Converged {
		t.Fatalf("State = %v, want converged", r.State)
	}
	if r.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", r.Iterations)
	}
	if r.Value != start {
		t.Errorf("Value = %+v, want %+v", r.Value, start)
	}
	if r.Reason != ReasonNone {
		t.Errorf("Reason = %v, want none", r.Reason)
	}
}

// TestConvergeEmptyNeighborhood starts from a color that no cell is close
// to, so the first evaluation finds nothing.
func TestConvergeEmptyNeighborhood(t *testing.T) {
	src := uniformGrid(3, 3, 20, 0, 0)
	cfg := testConfig()
	cfg.SpatialRadius = 10 // larger than the grid
	start := Feature{X: 0, Y: 0, L: 90, A: 0, B: 0}

	r := converge(start, src, &cfg)
	if r.State != Exhausted || r.Reason != ReasonEmptyNeighborhood {
		t.Fatalf("State/Reason = %v/%v, want exhausted/empty-neighborhood", r.State, r.Reason)
	}
	if r.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", r.Iterations)
	}
	if r.Value != start {
		t.Errorf("Value = %+v, want unchanged %+v", r.Value, start)
	}
}

// TestConvergeIsolatedCorner covers a corner pixel with a radius larger
// than the grid whose color no other cell shares. Only the pixel itself
// qualifies, so it stays where it is.
func TestConvergeIsolatedCorner(t *testing.T) {
	src := NewGridFromColors(3, 3, func(row, col int) (float64, float64, float64) {
		if row == 0 && col == 0 {
			return 90, 0, 0
		}
		return 10, 0, 0
	})
	cfg := testConfig()
	cfg.SpatialRadius = 10
	start := src.At(0, 0)

	r := converge(start, src, &cfg)
	// The pixel counts itself, so it is a fixed point rather than an
	// empty neighborhood.
	if r.State != Converged || r.Reason != ReasonNone {
		t.Errorf("State/Reason = %v/%v, want converged/none", r.State, r.Reason)
	}
	if r.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", r.Iterations)
	}
	if r.Value != start {
		t.Errorf("Value = %+v, want unchanged %+v", r.Value, start)
	}
}

func TestConvergeHugeSpatialRadius(t *testing.T) {
	src := NewGridFromColors(1, 3, func(_, col int) (float64, float64, float64) {
		return float64(col), 0, 0
	})

	var want Result
	for i, hs := range []int{1000, math.MaxInt} {
		cfg := testConfig()
		cfg.SpatialRadius = hs
		if err := cfg.Validate(); err != nil {
			t.Fatalf("hs=%d: Validate() = %v", hs, err)
		}

		r := converge(src.At(0, 2), src, &cfg)
		if r.State != Converged || r.Iterations != 2 {
			t.Errorf("hs=%d: State=%v Iterations=%d, want converged in 2", hs, r.State, r.Iterations)
		}
		if r.Value.X != 1 || r.Value.L != 1 {
			t.Errorf("hs=%d: Value = %+v, want X=1 L=1", hs, r.Value)
		}
		if i == 0 {
			want = r
		} else if r != want {
			t.Errorf("hs=%d: %+v differs from hs=1000: %+v", hs, r, want)
		}
	}
}

// TestConvergeNeedsBothTolerancesSpatial drifts along a uniform row: the
// color displacement is zero from the first step, but the position keeps
// moving, so the loop must continue.
func TestConvergeNeedsBothTolerancesSpatial(t *testing.T) {
	src := uniformGrid(1, 7, 50, 0, 0)
	cfg := testConfig()
	cfg.SpatialRadius = 3

	r := converge(src.At(0, 0), src, &cfg)
	if r.State != Converged {
		t.Fatalf("State = %v, want converged", r.State)
	}
	// 0 -> 1.5 -> 2 -> 2.5 -> 2.5
	if r.Iterations != 4 {
		t.Errorf("Iterations = %d, want 4", r.Iterations)
	}
	if r.Value.X != 2.5 || r.Value.Y != 0 {
		t.Errorf("Value position = (%v, %v), want (2.5, 0)", r.Value.X, r.Value.Y)
	}
}

// TestConvergeNeedsBothTolerancesColor keeps the position fixed by symmetry
// while the color moves, so the loop must continue.
func TestConvergeNeedsBothTolerancesColor(t *testing.T) {
	src := NewGridFromColors(1, 3, func(_, col int) (float64, float64, float64) {
		if col == 1 {
			return 50, 0, 0
		}
		return 70, 0, 0
	})
	cfg := testConfig()
	cfg.SpatialRadius = 1
	cfg.ColorRadius = 30

	r := converge(src.At(0, 1), src, &cfg)
	if r.State != Converged {
		t.Fatalf("State = %v, want converged", r.State)
	}
	if r.Iterations != 2 {
		t.Errorf("Iterations = %d, want 2", r.Iterations)
	}
	if r.Value.X != 1 || r.Value.L != 190.0/3 {
		t.Errorf("Value = %+v, want X=1 L=190/3", r.Value)
	}
}

func TestConvergeIterationCap(t *testing.T) {
	src := uniformGrid(1, 7, 50, 0, 0)
	cfg := testConfig()
	cfg.SpatialRadius = 3
	cfg.MaxIter = 2

	r := converge(src.At(0, 0), src, &cfg)
	if r.State != Exhausted || r.Reason != ReasonIterationCap {
		t.Fatalf("State/Reason = %v/%v, want exhausted/iteration-cap", r.State, r.Reason)
	}
	if r.Iterations != 2 {
		t.Errorf("Iterations = %d, want 2", r.Iterations)
	}
	if r.Value.X != 2 {
		t.Errorf("Value.X = %v, want 2 (estimate after the last step)", r.Value.X)
	}
}

func TestConvergeBoundedByMaxIter(t *testing.T) {
	src := randomGrid(16, 16, 7)
	for _, maxIter := range []int{1, 2, 3, 5} {
		cfg := testConfig()
		cfg.MaxIter = maxIter
		cfg.ColorTolerance = 0
		cfg.SpatialTolerance = 0

		for row := range src.Rows() {
			for col := range src.Cols() {
				r := converge(src.At(row, col), src, &cfg)
				if r.Iterations > maxIter {
					t.Fatalf("pixel (%d,%d): %d iterations with MaxIter=%d", row, col, r.Iterations, maxIter)
				}
				if r.State == Iterating {
					t.Fatalf("pixel (%d,%d) returned in iterating state", row, col)
				}
			}
		}
	}
}

func TestFilterConvergeMatchesApply(t *testing.T) {
	src := randomGrid(10, 12, 3)
	f, err := NewFilter(testConfig(), WithWorkers(1))
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	defer f.Close()

	out, _ := f.Apply(src)
	for _, p := range [][2]int{{0, 0}, {5, 7}, {9, 11}} {
		r := f.Converge(src.At(p[0], p[1]), src)
		if r.Value != out.At(p[0], p[1]) {
			t.Errorf("Converge at %v = %+v, Apply wrote %+v", p, r.Value, out.At(p[0], p[1]))
		}
	}
}
