// Package meanshift implements mean-shift color segmentation of raster images.
//
// # Overview
//
// Every pixel is a point in a five-dimensional feature space: its column and
// row plus three CIE L*a*b* color channels. The filter repeatedly moves each
// point to the mean of the source pixels that lie within a spatial radius
// (hs) and a color radius (hr) of it, until two successive estimates differ
// by no more than both tolerances or the iteration cap is reached. Writing
// the final color of each point back to its pixel flattens regions of
// similar color while keeping edges between dissimilar regions sharp.
//
// # Quick Start
//
//	import "github.com/gogpu/meanshift"
//
//	f, err := meanshift.NewFilter(meanshift.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src := meanshift.GridFromImage(img)
//	out, stats := f.Apply(src)
//	segmented := out.ToImage()
//
// # Determinism
//
// Neighborhoods are always read from the source grid, never from the output
// or from other pixels' intermediate estimates. Each output pixel therefore
// depends only on the source and the configuration: sequential and parallel
// passes, and passes in any pixel order, produce bit-identical grids.
//
// # Architecture
//
//   - Public API: Feature, Grid, Config, Filter, Stats
//   - Bridge: GridFromImage, Grid.ToImage, NewGridFromLab8, Grid.Lab8
//   - Internal: color (sRGB and Lab), image (file I/O, resize),
//     parallel (worker pool)
//   - Command: cmd/meanshift
package meanshift

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
