package align

// cell is one DP entry: accumulated cost and the step that reached it.
type cell struct {
	cost float64
	op   OpKind
}

// grid is a row-major (rows x cols) buffer owned by a single alignment.
type grid struct {
	cols  int
	cells []cell
}

func newGrid(rows, cols int) grid {
	return grid{cols: cols, cells: make([]cell, rows*cols)}
}

func (g *grid) at(i, j int) *cell {
	return &g.cells[i*g.cols+j]
}
