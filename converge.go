package meanshift

// State is the phase of a single pixel's convergence loop.
type State uint8

const (
	// Iterating means the estimate is still moving.
	Iterating State = iota
	// Converged means two successive estimates were within both tolerances.
	Converged
	// Exhausted means the loop stopped without converging, either because
	// the iteration cap was reached or because no neighbor qualified.
	Exhausted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Reason explains why a loop ended in the Exhausted state.
type Reason uint8

const (
	// ReasonNone is reported for loops that did not end Exhausted.
	ReasonNone Reason = iota
	// ReasonIterationCap means MaxIter iterations ran without converging.
	ReasonIterationCap
	// ReasonEmptyNeighborhood means the window around the estimate held no
	// qualifying neighbor, so there was no direction to move in.
	ReasonEmptyNeighborhood
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonIterationCap:
		return "iteration-cap"
	case ReasonEmptyNeighborhood:
		return "empty-neighborhood"
	default:
		return "unknown"
	}
}

// Result is the outcome of one pixel's convergence loop.
//
// Value is the pixel's converged feature vector regardless of State; the
// filter writes it to the output without looking at State or Reason.
type Result struct {
	Value Feature
	State State
	// Reason is set only when State is Exhausted.
	Reason Reason
	// Iterations counts neighborhood evaluations, including a final one that
	// found no neighbors. It never exceeds Config.MaxIter.
	Iterations int
}

// converge runs the mean-shift loop for one starting vector. Every
// neighborhood is read from src and re-centered on the previous estimate.
// cfg must already be validated.
func converge(start Feature, src *Grid, cfg *Config) Result {
	current := start
	iter := 0

	for {
		previous := current

		mean, count := aggregate(previous, src, cfg.SpatialRadius, cfg.ColorRadius)
		iter++
		if count == 0 {
			return Result{
				Value:      previous,
				State:      Exhausted,
				Reason:     ReasonEmptyNeighborhood,
				Iterations: iter,
			}
		}
		current = mean

		// Both displacements must be within tolerance at the same time.
		if ColorDistance(current, previous) <= cfg.ColorTolerance &&
			SpatialDistance(current, previous) <= cfg.SpatialTolerance {
			return Result{Value: current, State: Converged, Iterations: iter}
		}
		if iter >= cfg.MaxIter {
			return Result{
				Value:      current,
				State:      Exhausted,
				Reason:     ReasonIterationCap,
				Iterations: iter,
			}
		}
	}
}
