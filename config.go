package meanshift

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("meanshift: invalid config")

// Config holds the fixed parameters of a filter pass.
// All values are constant for the whole pass.
type Config struct {
	// SpatialRadius (hs) bounds the neighborhood window in pixels.
	// Must be positive.
	SpatialRadius int

	// ColorRadius (hr) is the maximum color distance for a neighbor to
	// qualify. Must be positive and finite.
	ColorRadius float64

	// MaxIter caps the number of shift iterations per pixel. Must be positive.
	MaxIter int

	// ColorTolerance is the largest color displacement between two
	// successive estimates that still counts as converged. Must not be
	// negative.
	ColorTolerance float64

	// SpatialTolerance is the spatial counterpart of ColorTolerance.
	// Must not be negative.
	SpatialTolerance float64
}

// DefaultConfig returns the parameters commonly used for 256x256 inputs:
// hs=8, hr=16, five iterations and tolerances of 0.3.
func DefaultConfig() Config {
	return Config{
		SpatialRadius:    8,
		ColorRadius:      16,
		MaxIter:          5,
		ColorTolerance:   0.3,
		SpatialTolerance: 0.3,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
// Values are never clamped.
func (c Config) Validate() error {
	switch {
	case c.SpatialRadius <= 0:
		return fmt.Errorf("%w: spatial radius must be positive, got %d", ErrInvalidConfig, c.SpatialRadius)
	case !(c.ColorRadius > 0) || math.IsInf(c.ColorRadius, 0):
		return fmt.Errorf("%w: color radius must be positive and finite, got %v", ErrInvalidConfig, c.ColorRadius)
	case c.MaxIter <= 0:
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfig, c.MaxIter)
	case !(c.ColorTolerance >= 0):
		return fmt.Errorf("%w: color tolerance must not be negative, got %v", ErrInvalidConfig, c.ColorTolerance)
	case !(c.SpatialTolerance >= 0):
		return fmt.Errorf("%w: spatial tolerance must not be negative, got %v", ErrInvalidConfig, c.SpatialTolerance)
	}
	return nil
}
