package meanshift

import "math"

// aggregate scans the (2*hs+1) x (2*hs+1) window of src centered on the
// rounded spatial position of center, clipped to the grid, and returns the
// mean of every cell within hs spatially and hr in color, together with the
// number of such cells. A count of zero means no cell qualified; the mean is
// then the zero Feature and must not be used.
//
// aggregate only reads src.
func aggregate(center Feature, src *Grid, hs int, hr float64) (Feature, int) {
	cx := int(math.Round(center.X))
	cy := int(math.Round(center.Y))

	// Clip the scan extent to the grid before adding, so that huge radii
	// cannot overflow.
	span := min(hs, max(src.rows, src.cols))
	minX := max(cx-span, 0)
	maxX := min(cx+span, src.cols-1)
	minY := max(cy-span, 0)
	maxY := min(cy+span, src.rows-1)

	radius := float64(hs)
	var acc accumulator

	for y := minY; y <= maxY; y++ {
		row := src.cells[y*src.cols : (y+1)*src.cols]
		for x := minX; x <= maxX; x++ {
			n := row[x]
			if SpatialDistance(center, n) <= radius && ColorDistance(center, n) <= hr {
				acc.add(n)
			}
		}
	}

	if acc.count == 0 {
		return Feature{}, 0
	}
	return acc.mean(), acc.count
}
