package parallel

// Band is a contiguous half-open range of image rows [Start, End).
type Band struct {
	Start int
	End   int
}

// Len returns the number of rows in the band.
func (b Band) Len() int {
	return b.End - b.Start
}

// SplitRows divides rows into at most n contiguous bands of near-equal size.
// Earlier bands receive the extra rows when rows is not divisible by n.
// Returns nil if rows or n is not positive.
func SplitRows(rows, n int) []Band {
	if rows <= 0 || n <= 0 {
		return nil
	}
	n = min(n, rows)

	bands := make([]Band, n)
	size, extra := rows/n, rows%n
	start := 0
	for i := range bands {
		end := start + size
		if i < extra {
			end++
		}
		bands[i] = Band{Start: start, End: end}
		start = end
	}
	return bands
}

// ForEachBand calls fn once per band on the pool and waits for all calls to
// return. fn receives the band's index in bands so that callers can collect
// per-band results without locking.
func (p *WorkerPool) ForEachBand(bands []Band, fn func(i int, b Band)) {
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(i, b) }
	}
	p.ExecuteAll(work)
}
