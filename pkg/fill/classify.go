package fill

import (
	"github.com/nicklafarge/crosscosmo/pkg/grid"
	"github.com/nicklafarge/crosscosmo/pkg/lexicon"
)

// classification is the three-way verdict on a partial word: it can never
// extend into a lexicon word of this length (invalid), it currently
// extends a live word but isn't one itself (validPrefix), or it is itself
// a live word of exactly this length (validWord).
type classification int

const (
	invalid classification = iota
	validPrefix
	validWord
)

// partial returns the word spelled from the start of the slot through
// (row, col) inclusive, the slot's total length, and whether (row, col) is
// the slot's last cell. Cells after the cursor are never read because the
// cursor invariant guarantees every cell before it already holds a letter.
func partial(g *grid.Grid, row, col int, dir grid.Direction) (word string, length int, isEnd bool) {
	slot := g.Slot(row, col, dir, false)
	length = len(slot.Cells)

	idx := 0
	for i, c := range slot.Cells {
		if c.Row == row && c.Col == col {
			idx = i
			break
		}
	}

	letters := make([]byte, idx+1)
	for i := 0; i <= idx; i++ {
		letters[i] = byte(slot.Cells[i].Letter)
	}

	return string(letters), length, idx == length-1
}

// classify looks up word (length characters, ending at the slot's last
// cell iff isEnd) in lex's length-`length` trie.
func classify(lex *lexicon.Lexicon, word string, length int, isEnd bool) classification {
	if isEnd {
		if lex.HasExact(length, word) {
			return validWord
		}
		return invalid
	}
	if lex.HasPrefix(length, word) {
		return validPrefix
	}
	return invalid
}

// classifyBoth classifies the horizontal and vertical partials through
// (row, col).
func classifyBoth(lex *lexicon.Lexicon, g *grid.Grid, row, col int) (h, v classification, hWord, vWord string, hLen, vLen int, hEnd, vEnd bool) {
	hWord, hLen, hEnd = partial(g, row, col, grid.ACROSS)
	h = classify(lex, hWord, hLen, hEnd)
	vWord, vLen, vEnd = partial(g, row, col, grid.DOWN)
	v = classify(lex, vWord, vLen, vEnd)
	return
}
