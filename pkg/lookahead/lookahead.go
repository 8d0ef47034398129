// Package lookahead implements a bounded-depth read-only estimator of how
// many ways a partially-filled grid can still be completed, for use as a
// solver heuristic or as "completions remaining" feedback in interactive
// tooling.
package lookahead

import (
	"github.com/nicklafarge/crosscosmo/pkg/grid"
	"github.com/nicklafarge/crosscosmo/pkg/lexicon"
)

// CountPossible explores, for each cell in cells, the slot crossing it
// (the orientation perpendicular to cells.Direction) and sums
// 1+recursive-count over every lexicon word still matching that slot's
// current pattern. Recursion descends depth-1 levels into the
// not-yet-evaluated cells of each crossing slot, alternating orientation
// at every level. It short-circuits to 0 as soon as any slot in cells has
// zero matching candidates, since that cell list is already infeasible.
//
// CountPossible is read-only: every letter it writes while exploring a
// candidate is undone before the function returns, on every return path,
// and it never mutates lex (Query never touches the trie's live/removed
// bookkeeping).
func CountPossible(g *grid.Grid, lex *lexicon.Lexicon, cells *grid.CellList, depth int) int {
	if depth <= 0 || cells == nil || len(cells.Cells) == 0 {
		return 0
	}

	total := 0
	for _, c := range cells.Cells {
		crossDir := cells.Direction.Cross()
		slot := g.Slot(c.Row, c.Col, crossDir, false)

		words, err := lex.Query(slot.String())
		if err != nil || len(words) == 0 {
			return 0
		}

		saved := captureLetters(slot)
		for _, w := range words {
			writeWord(slot, w.Text)
			total += 1 + CountPossible(g, lex, remainder(slot, c, crossDir), depth-1)
			restoreLetters(slot, saved)
		}
	}

	return total
}

func captureLetters(slot *grid.CellList) []rune {
	out := make([]rune, len(slot.Cells))
	for i, c := range slot.Cells {
		out[i] = c.Letter
	}
	return out
}

func restoreLetters(slot *grid.CellList, saved []rune) {
	for i, c := range slot.Cells {
		c.Letter = saved[i]
	}
}

func writeWord(slot *grid.CellList, word string) {
	for i, ch := range word {
		slot.Cells[i].Letter = ch
	}
}

// remainder returns the cells of slot other than exclude, as a CellList in
// dir — the "not-yet-evaluated starts reachable from the crossing slot"
// the next recursion level explores.
func remainder(slot *grid.CellList, exclude *grid.Cell, dir grid.Direction) *grid.CellList {
	cells := make([]*grid.Cell, 0, len(slot.Cells)-1)
	for _, c := range slot.Cells {
		if c == exclude {
			continue
		}
		cells = append(cells, c)
	}
	return &grid.CellList{Cells: cells, Direction: dir}
}
