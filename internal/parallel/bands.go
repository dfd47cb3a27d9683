package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Height returns the number of rows in the band.
func (b Band) Height() int { return b.Y1 - b.Y0 }

// SplitRows cuts [0, height) into bands of rowsPerBand rows, rounded up to a
// multiple of align so that stride-sized pixel blocks never straddle two
// bands. The last band may be shorter.
func SplitRows(height, rowsPerBand, align int) []Band {
	if height <= 0 {
		return nil
	}
	align = max(align, 1)
	rowsPerBand = max(rowsPerBand, 1)
	if r := rowsPerBand % align; r != 0 {
		rowsPerBand += align - r
	}

	bands := make([]Band, 0, (height+rowsPerBand-1)/rowsPerBand)
	for y := 0; y < height; y += rowsPerBand {
		bands = append(bands, Band{Y0: y, Y1: min(y+rowsPerBand, height)})
	}
	return bands
}

// ForEachBand runs fn once per band. With a nil pool or a single band the
// calls happen in order on the calling goroutine.
func ForEachBand(p *WorkerPool, bands []Band, fn func(Band)) {
	if p == nil || len(bands) <= 1 || p.Workers() == 1 {
		for _, b := range bands {
			fn(b)
		}
		return
	}
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	p.ExecuteAll(work)
}
