package grid

// mirror returns the counterpart of (row, col) under the grid's configured
// symmetry: 180-degree rotation for SymmetryRotational, left-right mirror
// for SymmetryReflection. SymmetryNone mirrors every cell to itself.
func (g *Grid) mirror(row, col int) (int, int) {
	switch g.Symmetry {
	case SymmetryRotational:
		return g.Rows - 1 - row, g.Cols - 1 - col
	case SymmetryReflection:
		return row, g.Cols - 1 - col
	default:
		return row, col
	}
}

// EnforceSymmetry mirrors black squares so the grid satisfies its
// configured Symmetry mode. A cell that is black forces its counterpart
// black too; it never un-blackens a counterpart (callers seeding a pattern
// call this once after placing all intended black squares).
func (g *Grid) EnforceSymmetry() {
	if g.Symmetry == SymmetryNone {
		return
	}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Cells[row][col].Status != BLACK {
				continue
			}
			mRow, mCol := g.mirror(row, col)
			g.Cells[mRow][mCol].Status = BLACK
		}
	}
	g.RecomputeGeometry()
}

// IsSymmetric reports whether the grid's black-square pattern satisfies its
// configured Symmetry mode. SymmetryNone is trivially always satisfied.
func (g *Grid) IsSymmetric() bool {
	if g.Symmetry == SymmetryNone {
		return true
	}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			mRow, mCol := g.mirror(row, col)
			a := g.Cells[row][col].Status == BLACK
			b := g.Cells[mRow][mCol].Status == BLACK
			if a != b {
				return false
			}
		}
	}
	return true
}
