package editdist

import (
	"fmt"
	"strings"
)

// grid is the (n+1)×(m+1) cost table of one Align call.
// Rows are source positions 0..n, columns target positions 0..m.
// Values live in a flat row-major slice; cell (i,j) is data[i*cols+j].
type grid struct {
	rows, cols int     // n+1 and m+1
	data       []int64 // flat backing storage, length == rows*cols
}

// newGrid allocates a zeroed grid for sequences of lengths n and m.
// Complexity: O(n·m) time and memory.
func newGrid(n, m int) *grid {
	rows, cols := n+1, m+1

	return &grid{rows: rows, cols: cols, data: make([]int64, rows*cols)}
}

// at returns the value at (i, j). Callers guarantee the bounds.
func (g *grid) at(i, j int) int64 {
	return g.data[i*g.cols+j]
}

// set stores v at (i, j). Callers guarantee the bounds.
func (g *grid) set(i, j int, v int64) {
	g.data[i*g.cols+j] = v
}

// String renders the grid row by row for debugging.
func (g *grid) String() string {
	var sb strings.Builder
	for i := 0; i < g.rows; i++ {
		sb.WriteByte('[')
		for j := 0; j < g.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%3d", g.at(i, j))
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
