package fill

import (
	"github.com/nicklafarge/crosscosmo/pkg/grid"
	"github.com/nicklafarge/crosscosmo/pkg/lexicon"
)

// backtrack retreats the cursor from (row, col) using mode, skipping
// LOCKED/BLACK cells. The failing cell at (row, col) is fully abandoned —
// its letter cleared, any removed_words re-inserted, and its queue reset
// to A-Z for a future forward pass — while the cell the cursor lands on
// has only its most recent trial undone, so its own (already-advanced)
// queue can resume. A BackV retreat lands on the nearest open cell above
// in column-major order that comes before the failing cell in row-major
// order, and every open cell between the two in row-major order is
// abandoned as well. ok is false when the retreat cannot move past the
// grid's first cell, meaning the puzzle has no solution.
func backtrack(lex *lexicon.Lexicon, g *grid.Grid, row, col int, mode grid.Move) (nr, nc int, ok bool) {
	failing := row*g.Cols + col
	abandon(lex, g.Cells[row][col])

	for {
		pr, pc := g.Next(row, col, mode)
		if pr == row && pc == col {
			return 0, 0, false
		}
		row, col = pr, pc

		cell := g.Cells[row][col]
		if cell.Status == grid.LOCKED || cell.Status == grid.BLACK {
			continue
		}

		if mode == grid.BackV {
			landing := row*g.Cols + col
			if landing > failing {
				continue
			}
			for i := landing + 1; i < failing; i++ {
				abandon(lex, g.Cells[i/g.Cols][i%g.Cols])
			}
		}

		undoAcceptance(lex, cell)
		return row, col, true
	}
}

// abandon fully resets cell: letter/status to EMPTY, removed_words
// restored to the trie, excluded letters reset, and a fresh, unshuffled
// A-Z queue ready for a future forward pass. A no-op on LOCKED/BLACK
// cells, which are never mutated by the solver.
func abandon(lex *lexicon.Lexicon, cell *grid.Cell) {
	if cell.Status == grid.LOCKED || cell.Status == grid.BLACK {
		return
	}
	undoAcceptance(lex, cell)
	cell.Excluded = nil
	cell.Queue = newQueue(nil)
}

// undoAcceptance restores a cell's removed_words to the trie and clears
// its current letter, without touching its queue or excluded list — used
// when a cell is about to resume popping its own queue rather than being
// abandoned outright.
func undoAcceptance(lex *lexicon.Lexicon, cell *grid.Cell) {
	for _, rw := range cell.RemovedWords {
		_ = lex.Insert(rw.Length, rw.Word)
	}
	cell.RemovedWords = nil
	cell.Letter = 0
	cell.Status = grid.EMPTY
}
