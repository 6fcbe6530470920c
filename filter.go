package meanshift

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/gogpu/meanshift/internal/parallel"
)

// Filter errors.
var (
	// ErrDimensionMismatch is returned when the output grid does not have the
	// source grid's dimensions.
	ErrDimensionMismatch = errors.New("meanshift: output grid dimensions differ from source")

	// ErrSameGrid is returned when the output grid is the source grid.
	// Writing into the source would let finished pixels leak into the
	// neighborhoods of pixels still converging.
	ErrSameGrid = errors.New("meanshift: output grid must not be the source grid")

	// ErrNilGrid is returned when a grid argument is nil.
	ErrNilGrid = errors.New("meanshift: nil grid")
)

// bandsPerWorker controls how finely rows are split for work stealing.
const bandsPerWorker = 4

// Stats summarizes one filter pass.
type Stats struct {
	// Pixels is the number of cells processed.
	Pixels int
	// Converged counts pixels whose estimate settled within both tolerances.
	Converged int
	// ExhaustedIterations counts pixels stopped by the iteration cap.
	ExhaustedIterations int
	// ExhaustedEmpty counts pixels stopped by an empty neighborhood.
	ExhaustedEmpty int
	// Iterations is the total number of neighborhood evaluations.
	Iterations int
	// MaxIterations is the largest iteration count of any single pixel.
	MaxIterations int
}

func (s *Stats) add(r Result) {
	s.Pixels++
	s.Iterations += r.Iterations
	s.MaxIterations = max(s.MaxIterations, r.Iterations)
	switch {
	case r.State == Converged:
		s.Converged++
	case r.Reason == ReasonEmptyNeighborhood:
		s.ExhaustedEmpty++
	default:
		s.ExhaustedIterations++
	}
}

func (s *Stats) merge(o Stats) {
	s.Pixels += o.Pixels
	s.Converged += o.Converged
	s.ExhaustedIterations += o.ExhaustedIterations
	s.ExhaustedEmpty += o.ExhaustedEmpty
	s.Iterations += o.Iterations
	s.MaxIterations = max(s.MaxIterations, o.MaxIterations)
}

// MeanIterations returns the average iteration count per pixel.
func (s Stats) MeanIterations() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Iterations) / float64(s.Pixels)
}

// Filter performs mean-shift mode filtering of feature grids.
//
// Every output pixel depends only on the source grid and the configuration,
// so the result is identical whether the pass runs sequentially or across
// workers, and in any pixel order.
//
// A Filter may be used for any number of passes, including concurrent ones.
// Call Close to stop its workers once every pass has returned.
type Filter struct {
	cfg     Config
	workers int
	pool    *parallel.WorkerPool // nil when sequential
	log     *slog.Logger
}

// NewFilter validates cfg and creates a filter.
// It returns an error wrapping ErrInvalidConfig for invalid parameters.
func NewFilter(cfg Config, opts ...Option) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	f := &Filter{
		cfg:     cfg,
		workers: workers,
		log:     o.logger,
	}
	if workers > 1 {
		f.pool = parallel.NewWorkerPool(workers)
		f.logger().Info("meanshift: worker pool started", "workers", workers)
	}
	return f, nil
}

// Config returns the filter's configuration.
func (f *Filter) Config() Config {
	return f.cfg
}

// Workers returns the number of goroutines a pass uses.
func (f *Filter) Workers() int {
	return f.workers
}

// Close stops the filter's workers. Passes started after Close run
// sequentially. Close is safe to call multiple times, but it must not be
// called while a pass is running.
func (f *Filter) Close() {
	if f.pool != nil && f.pool.IsRunning() {
		f.pool.Close()
		f.logger().Info("meanshift: worker pool stopped")
	}
}

// Apply filters src into a newly allocated grid of the same dimensions.
// src is not modified. A nil or empty src yields an empty grid.
func (f *Filter) Apply(src *Grid) (*Grid, Stats) {
	if src == nil || src.Empty() {
		return NewGrid(0, 0), Stats{}
	}
	dst := NewGrid(src.rows, src.cols)
	return dst, f.run(src, dst)
}

// ApplyInto filters src into dst, which must have the same dimensions and
// must not be src. Dimensions are checked once, before any pixel work.
func (f *Filter) ApplyInto(src, dst *Grid) (Stats, error) {
	if src == nil || dst == nil {
		return Stats{}, ErrNilGrid
	}
	if src == dst {
		return Stats{}, ErrSameGrid
	}
	if !src.SameSize(dst) {
		return Stats{}, fmt.Errorf("%w: source %dx%d, output %dx%d",
			ErrDimensionMismatch, src.rows, src.cols, dst.rows, dst.cols)
	}
	if src.Empty() {
		return Stats{}, nil
	}
	return f.run(src, dst), nil
}

// Converge runs the convergence loop for a single starting vector against
// src. Apply calls the same loop with each cell's own vector.
func (f *Filter) Converge(start Feature, src *Grid) Result {
	return converge(start, src, &f.cfg)
}

func (f *Filter) run(src, dst *Grid) Stats {
	started := time.Now()

	var stats Stats
	workers := 1
	if f.pool != nil && f.pool.IsRunning() {
		workers = f.workers
		bands := parallel.SplitRows(src.rows, workers*bandsPerWorker)
		perBand := make([]Stats, len(bands))
		f.pool.ForEachBand(bands, func(i int, b parallel.Band) {
			perBand[i] = f.filterRows(src, dst, b.Start, b.End)
		})
		for _, s := range perBand {
			stats.merge(s)
		}
	} else {
		stats = f.filterRows(src, dst, 0, src.rows)
	}

	f.logger().Debug("meanshift: pass complete",
		"rows", src.rows,
		"cols", src.cols,
		"workers", workers,
		"converged", stats.Converged,
		"exhausted_iterations", stats.ExhaustedIterations,
		"exhausted_empty", stats.ExhaustedEmpty,
		"max_iterations", stats.MaxIterations,
		"elapsed", time.Since(started),
	)
	return stats
}

// filterRows converges every cell in rows [start, end) and writes the
// results to the same cells of dst.
func (f *Filter) filterRows(src, dst *Grid, start, end int) Stats {
	var stats Stats
	for i := start * src.cols; i < end*src.cols; i++ {
		stats.add(f.filterCell(src, dst, i))
	}
	return stats
}

// filterCell converges the cell at flat index i.
func (f *Filter) filterCell(src, dst *Grid, i int) Result {
	r := converge(src.cells[i], src, &f.cfg)
	dst.cells[i] = r.Value
	return r
}

func (f *Filter) logger() *slog.Logger {
	if f.log != nil {
		return f.log
	}
	return Logger()
}
