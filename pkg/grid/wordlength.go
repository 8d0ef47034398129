package grid

import "errors"

// ErrShortWords is returned when a grid contains slots shorter than MinWordLength.
var ErrShortWords = errors.New("grid contains words shorter than minimum allowed length")

// MinWordLength is the minimum allowed slot length in a crossword grid.
const MinWordLength = 3

// HasShortWords reports whether the grid contains any non-BLACK run (of
// length > 1, in either orientation) shorter than MinWordLength. A lone
// non-BLACK cell boxed in on both sides isn't itself a word slot, so runs of
// length 1 are not flagged.
func (g *Grid) HasShortWords() bool {
	if g == nil || g.Rows == 0 || g.Cols == 0 {
		return false
	}

	for row := 0; row < g.Rows; row++ {
		length := 0
		for col := 0; col < g.Cols; col++ {
			if g.Cells[row][col].Status == BLACK {
				if length > 1 && length < MinWordLength {
					return true
				}
				length = 0
			} else {
				length++
			}
		}
		if length > 1 && length < MinWordLength {
			return true
		}
	}

	for col := 0; col < g.Cols; col++ {
		length := 0
		for row := 0; row < g.Rows; row++ {
			if g.Cells[row][col].Status == BLACK {
				if length > 1 && length < MinWordLength {
					return true
				}
				length = 0
			} else {
				length++
			}
		}
		if length > 1 && length < MinWordLength {
			return true
		}
	}

	return false
}
