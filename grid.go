package meanshift

// Grid is a fixed-size, row-major 2D array of feature vectors.
//
// A Grid serves both as the immutable source snapshot of a filter pass and as
// its output. Cell (row, col) is stored at index row*cols + col.
//
// Thread safety: concurrent reads are safe. Concurrent writes are safe only
// when each goroutine writes a disjoint set of cells.
type Grid struct {
	rows  int
	cols  int
	cells []Feature
}

// NewGrid creates a zero-filled grid. Non-positive dimensions yield an empty
// grid with zero rows and columns.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		return &Grid{}
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Feature, rows*cols),
	}
}

// NewGridFromColors creates a grid whose cell (row, col) has spatial
// coordinates X=col, Y=row and the color returned by fn.
func NewGridFromColors(rows, cols int, fn func(row, col int) (l, a, b float64)) *Grid {
	g := NewGrid(rows, cols)
	for row := range g.rows {
		for col := range g.cols {
			l, a, b := fn(row, col)
			g.cells[row*g.cols+col] = Feature{
				X: float64(col),
				Y: float64(row),
				L: l,
				A: a,
				B: b,
			}
		}
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Empty reports whether the grid has no cells.
func (g *Grid) Empty() bool {
	return len(g.cells) == 0
}

// At returns the feature vector at (row, col).
// It panics if the coordinates are out of range.
func (g *Grid) At(row, col int) Feature {
	return g.cells[g.index(row, col)]
}

// Set stores f at (row, col).
// It panics if the coordinates are out of range.
func (g *Grid) Set(row, col int, f Feature) {
	g.cells[g.index(row, col)] = f
}

// SameSize reports whether g and other have identical dimensions.
func (g *Grid) SameSize(other *Grid) bool {
	return g.rows == other.rows && g.cols == other.cols
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols}
	if len(g.cells) > 0 {
		c.cells = make([]Feature, len(g.cells))
		copy(c.cells, g.cells)
	}
	return c
}

// Equal reports whether g and other have the same dimensions and
// bit-identical cells.
func (g *Grid) Equal(other *Grid) bool {
	if !g.SameSize(other) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) index(row, col int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic("meanshift: grid coordinates out of range")
	}
	return row*g.cols + col
}
