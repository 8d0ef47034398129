package fill

import (
	"context"
	"math/rand"

	"github.com/nicklafarge/crosscosmo/pkg/grid"
	"github.com/nicklafarge/crosscosmo/pkg/lexicon"
)

// Config tunes a single Solve call.
type Config struct {
	// Shuffle, when non-nil, randomizes each cell's initial letter trial
	// order; a queue reset on backtrack is always plain A-Z. Left nil, cells
	// try A-Z in order, which makes a solve deterministic.
	Shuffle *rand.Rand
}

// Solve assigns a letter to every non-BLACK, non-LOCKED cell of g so every
// slot of length >= grid.MinWordLength spells a word in g.Lexicon,
// backtracking on conflicts. It mutates a private clone of g.Lexicon's
// trie family, so g.Lexicon itself is never observably changed by a solve.
// ctx is polled once per cursor step; its cancellation unwinds the grid to
// its pre-solve state, same as ErrNoSolution. On success the grid is left
// fully filled; on ErrNoSolution it is restored to exactly its pre-solve
// contents.
func Solve(ctx context.Context, g *grid.Grid, config Config) error {
	if g == nil {
		return ErrNilGrid
	}
	if g.Lexicon == nil {
		return ErrNoLexicon
	}

	lex := g.Lexicon.Clone()
	snapshot := snapshotCells(g)
	initCells(g, config.Shuffle)

	row, col, ok := firstNonBlack(g)
	if !ok {
		return nil // every cell is BLACK; nothing to fill
	}

	for {
		select {
		case <-ctx.Done():
			restoreCells(g, snapshot)
			return ctx.Err()
		default:
		}

		cell := g.Cells[row][col]

		switch cell.Status {
		case grid.BLACK:
			nr, nc, done := advance(g, row, col)
			if done {
				return nil
			}
			row, col = nr, nc

		case grid.LOCKED:
			if acceptLocked(lex, g, row, col) {
				nr, nc, done := advance(g, row, col)
				if done {
					return nil
				}
				row, col = nr, nc
				continue
			}
			nr, nc, solved := backtrack(lex, g, row, col, lockedBackMode(lex, g, row, col))
			if !solved {
				restoreCells(g, snapshot)
				return ErrNoSolution
			}
			row, col = nr, nc

		default:
			advanced, nr, nc, done := tryQueue(lex, g, row, col)
			if advanced {
				if done {
					return nil
				}
				row, col = nr, nc
				continue
			}
			nr, nc, solved := backtrack(lex, g, row, col, grid.BackH)
			if !solved {
				restoreCells(g, snapshot)
				return ErrNoSolution
			}
			row, col = nr, nc
		}
	}
}

// advance moves the cursor forward in row-major order. done reports
// whether the grid is now fully solved (the cursor could not move past the
// last non-BLACK cell).
func advance(g *grid.Grid, row, col int) (nr, nc int, done bool) {
	nr, nc = g.Next(row, col, grid.ForwardH)
	return nr, nc, nr == row && nc == col
}

// acceptLocked checks a LOCKED cell's forced letter against both
// orientations without touching the trie: per the solver's invariants,
// LOCKED cells never register a removed_words entry of their own.
func acceptLocked(lex *lexicon.Lexicon, g *grid.Grid, row, col int) bool {
	h, v, _, _, _, _, _, _ := classifyBoth(lex, g, row, col)
	return h != invalid && v != invalid
}

// lockedBackMode picks BACK_V when the LOCKED cell's vertical partial is
// the one that fails at a vertical end while the horizontal is fine —
// further horizontal trials elsewhere on this row can't help, so the
// solver needs to mutate the column above. Every other failure uses
// BACK_H.
func lockedBackMode(lex *lexicon.Lexicon, g *grid.Grid, row, col int) grid.Move {
	h, v, _, _, _, _, _, vEnd := classifyBoth(lex, g, row, col)
	if v == invalid && h != invalid && vEnd {
		return grid.BackV
	}
	return grid.BackH
}

// tryQueue pops trial letters from cell's queue until one is accepted or
// the queue empties. advanced is true iff a letter was accepted and the
// cursor moved (or the grid completed, reported via done).
func tryQueue(lex *lexicon.Lexicon, g *grid.Grid, row, col int) (advanced bool, nr, nc int, done bool) {
	cell := g.Cells[row][col]

	for len(cell.Queue) > 0 {
		letter := cell.Queue[0]
		cell.Queue = cell.Queue[1:]

		cell.Letter = letter
		cell.Status = grid.SET

		if accept(lex, g, row, col) {
			nr, nc, done = advance(g, row, col)
			return true, nr, nc, done
		}

		cell.Letter = 0
		cell.Status = grid.EMPTY
		cell.Excluded = append(cell.Excluded, letter)
	}

	return false, row, col, false
}

// accept classifies both orientations through (row, col); a letter is
// accepted iff neither is INVALID. Any orientation classified VALID_WORD
// has that word removed from the trie and recorded in the cell's
// removed_words, so a different slot can't also claim it.
func accept(lex *lexicon.Lexicon, g *grid.Grid, row, col int) bool {
	cell := g.Cells[row][col]
	h, v, hWord, vWord, hLen, vLen, _, _ := classifyBoth(lex, g, row, col)
	if h == invalid || v == invalid {
		return false
	}

	if h == validWord {
		_ = lex.Remove(hLen, hWord)
		cell.RemovedWords = append(cell.RemovedWords, grid.RemovedWord{Word: hWord, Dir: grid.ACROSS, Length: hLen})
	}
	if v == validWord {
		_ = lex.Remove(vLen, vWord)
		cell.RemovedWords = append(cell.RemovedWords, grid.RemovedWord{Word: vWord, Dir: grid.DOWN, Length: vLen})
	}
	return true
}
