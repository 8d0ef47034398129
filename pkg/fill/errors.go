// Package fill implements the crossword grid solver: a cell-cursor
// backtracking search that assigns a letter to every non-BLACK, non-LOCKED
// cell so every slot of at least grid.MinWordLength spells a word present
// in the grid's Lexicon.
package fill

import "errors"

var (
	// ErrNilGrid is returned when Solve is called with a nil grid.
	ErrNilGrid = errors.New("fill: grid is nil")
	// ErrNoLexicon is returned when the grid carries no Lexicon to solve against.
	ErrNoLexicon = errors.New("fill: grid has no lexicon")
	// ErrNoSolution is returned when the solver backtracks past the grid's
	// first cell without completing every slot. The grid is restored to
	// its pre-solve contents before this is returned.
	ErrNoSolution = errors.New("fill: no solution")
)
