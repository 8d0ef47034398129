package grid

import "fmt"

// BlackSentinel is the value passed to Set to blacken a cell.
const BlackSentinel = "#"

// Set writes v into the cell at (row, col). v must be a single uppercase
// letter (the cell becomes SET), the empty string (the cell becomes EMPTY),
// or BlackSentinel (the cell becomes BLACK). LOCKED cells are never
// overwritten: Set on one returns ErrLocked and changes nothing. When AutoSymmetry is enabled with SymmetryRotational, setting
// a cell to BLACK also blackens its 180-degree rotational counterpart, and
// un-blackening a cell whose counterpart is BLACK resets that counterpart
// to EMPTY (it no longer holds a meaningful letter).
func (g *Grid) Set(row, col int, v string) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	cell := g.Cells[row][col]
	if cell.Status == LOCKED {
		return fmt.Errorf("%w: (%d, %d)", ErrLocked, row, col)
	}

	switch {
	case v == BlackSentinel:
		cell.Status = BLACK
		cell.Letter = 0
		g.mirrorBlack(row, col, true)
	case v == "":
		cell.Status = EMPTY
		cell.Letter = 0
		g.mirrorBlack(row, col, false)
	case len(v) == 1 && v[0] >= 'A' && v[0] <= 'Z':
		cell.Status = SET
		cell.Letter = rune(v[0])
		g.mirrorBlack(row, col, false)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidValue, v)
	}

	g.RecomputeGeometry()
	return nil
}

// mirrorBlack applies the auto-symmetry rule for a black/non-black edit at
// (row, col): when black is true the mirrored cell is forced BLACK; when
// false, a mirrored cell that was BLACK is reset to EMPTY.
func (g *Grid) mirrorBlack(row, col int, black bool) {
	if !g.AutoSymmetry || g.Symmetry != SymmetryRotational {
		return
	}
	mRow, mCol := g.Rows-1-row, g.Cols-1-col
	if mRow == row && mCol == col {
		return
	}
	mirror := g.Cells[mRow][mCol]
	if mirror.Status == LOCKED {
		return
	}
	if black {
		mirror.Status = BLACK
		mirror.Letter = 0
	} else if mirror.Status == BLACK {
		mirror.Status = EMPTY
		mirror.Letter = 0
	}
}

// Lock transitions a SET cell to LOCKED. It is a GeometryViolation (ErrNotSet)
// to lock a cell that isn't currently SET.
func (g *Grid) Lock(row, col int) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	cell := g.Cells[row][col]
	if cell.Status != SET {
		return fmt.Errorf("%w: (%d, %d) is %s", ErrNotSet, row, col, cell.Status)
	}
	cell.Status = LOCKED
	return nil
}

// Unlock transitions a LOCKED cell back to SET. It is a GeometryViolation
// (ErrNotLocked) to unlock a cell that isn't currently LOCKED.
func (g *Grid) Unlock(row, col int) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	cell := g.Cells[row][col]
	if cell.Status != LOCKED {
		return fmt.Errorf("%w: (%d, %d) is %s", ErrNotLocked, row, col, cell.Status)
	}
	cell.Status = SET
	return nil
}

// SetWord writes the letters of word into the slot beginning at (row, col)
// in the given direction. It fails with ErrWordTooLong if the slot's
// capacity differs from len(word). When lock is true, every written cell
// is transitioned straight to LOCKED.
func (g *Grid) SetWord(word string, row, col int, dir Direction, lock bool) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	start := g.Cells[row][col]
	capacity := start.HLen
	if dir == DOWN {
		capacity = start.VLen
	}
	if capacity != len(word) {
		return fmt.Errorf("%w: slot capacity %d, word length %d", ErrWordTooLong, capacity, len(word))
	}

	for i, ch := range word {
		r, c := row, col
		if dir == ACROSS {
			c += i
		} else {
			r += i
		}
		if err := g.Set(r, c, string(ch)); err != nil {
			return err
		}
		if lock {
			if err := g.Lock(r, c); err != nil {
				return err
			}
		}
	}
	return nil
}
