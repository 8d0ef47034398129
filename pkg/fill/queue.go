package fill

import (
	"math/rand"

	"github.com/nicklafarge/crosscosmo/pkg/grid"
)

// newQueue returns a fresh A-Z letter queue, shuffled when r is non-nil.
// Shuffling is a tuning knob for fill variety, never a semantic requirement.
func newQueue(r *rand.Rand) []rune {
	q := make([]rune, 26)
	for i := range q {
		q[i] = rune('A' + i)
	}
	if r != nil {
		r.Shuffle(len(q), func(i, j int) { q[i], q[j] = q[j], q[i] })
	}
	return q
}

// initCells resets every non-BLACK, non-LOCKED cell to EMPTY with a fresh
// letter queue, ready for a new solve. LOCKED cells are left untouched:
// their forced letter is the solver's input, not its output.
func initCells(g *grid.Grid, r *rand.Rand) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]
			if cell.Status == grid.BLACK || cell.Status == grid.LOCKED {
				continue
			}
			cell.Status = grid.EMPTY
			cell.Letter = 0
			cell.Excluded = nil
			cell.RemovedWords = nil
			cell.Queue = newQueue(r)
		}
	}
}

// firstNonBlack returns the row-major first non-BLACK cell, or ok=false if
// every cell in the grid is BLACK.
func firstNonBlack(g *grid.Grid) (row, col int, ok bool) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Cells[row][col].Status != grid.BLACK {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

// cellSnapshot captures the two fields Solve may mutate, for restoring a
// grid verbatim on NoSolution (spec property: a failed solve leaves the
// grid bitwise equal to its pre-solve state).
type cellSnapshot struct {
	status grid.CellStatus
	letter rune
}

func snapshotCells(g *grid.Grid) [][]cellSnapshot {
	out := make([][]cellSnapshot, g.Rows)
	for row := range out {
		out[row] = make([]cellSnapshot, g.Cols)
		for col := range out[row] {
			c := g.Cells[row][col]
			out[row][col] = cellSnapshot{status: c.Status, letter: c.Letter}
		}
	}
	return out
}

func restoreCells(g *grid.Grid, snap [][]cellSnapshot) {
	for row := range snap {
		for col := range snap[row] {
			c := g.Cells[row][col]
			c.Status = snap[row][col].status
			c.Letter = snap[row][col].letter
			c.Queue = nil
			c.Excluded = nil
			c.RemovedWords = nil
		}
	}
	g.RecomputeGeometry()
}
