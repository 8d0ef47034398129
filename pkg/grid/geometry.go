package grid

// RecomputeGeometry re-derives every cell's is-start/is-end flags, slot
// lengths, and answer numbers from the current black-square pattern, and
// rebuilds Grid.Entries (the length->=MinWordLength slots that must spell a
// lexicon word). Callers must invoke this after any structural edit — a
// change to which cells are BLACK — per the grid's invariant that geometry
// stays consistent with the black-square pattern.
func (g *Grid) RecomputeGeometry() {
	g.computeStartsAndEnds()
	g.computeLengths()
	g.assignAnswerNumbers()
	g.computeEntries()
}

func (g *Grid) computeStartsAndEnds() {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]
			if cell.Status == BLACK {
				cell.IsHStart, cell.IsHEnd = false, false
				cell.IsVStart, cell.IsVEnd = false, false
				continue
			}
			cell.IsHStart = col == 0 || g.Cells[row][col-1].Status == BLACK
			cell.IsHEnd = col == g.Cols-1 || g.Cells[row][col+1].Status == BLACK
			cell.IsVStart = row == 0 || g.Cells[row-1][col].Status == BLACK
			cell.IsVEnd = row == g.Rows-1 || g.Cells[row+1][col].Status == BLACK
		}
	}
}

func (g *Grid) computeLengths() {
	// Horizontal runs.
	for row := 0; row < g.Rows; row++ {
		col := 0
		for col < g.Cols {
			if g.Cells[row][col].Status == BLACK {
				g.Cells[row][col].HLen = 0
				col++
				continue
			}
			start := col
			for col < g.Cols && g.Cells[row][col].Status != BLACK {
				col++
			}
			length := col - start
			for c := start; c < col; c++ {
				g.Cells[row][c].HLen = length
			}
		}
	}

	// Vertical runs.
	for col := 0; col < g.Cols; col++ {
		row := 0
		for row < g.Rows {
			if g.Cells[row][col].Status == BLACK {
				g.Cells[row][col].VLen = 0
				row++
				continue
			}
			start := row
			for row < g.Rows && g.Cells[row][col].Status != BLACK {
				row++
			}
			length := row - start
			for r := start; r < row; r++ {
				g.Cells[r][col].VLen = length
			}
		}
	}
}

func (g *Grid) assignAnswerNumbers() {
	next := 1
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]
			if cell.Status == BLACK {
				cell.AnswerNumber = 0
				continue
			}
			if cell.IsHStart || cell.IsVStart {
				cell.AnswerNumber = next
				next++
			} else {
				cell.AnswerNumber = 0
			}
		}
	}
}

func (g *Grid) computeEntries() {
	var entries []*Entry

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]
			if cell.Status == BLACK || !cell.IsHStart || cell.HLen < MinWordLength {
				continue
			}
			cells := make([]*Cell, cell.HLen)
			for i := 0; i < cell.HLen; i++ {
				cells[i] = g.Cells[row][col+i]
			}
			entries = append(entries, &Entry{
				Number: cell.AnswerNumber, Direction: ACROSS,
				StartRow: row, StartCol: col, Length: cell.HLen, Cells: cells,
			})
		}
	}

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]
			if cell.Status == BLACK || !cell.IsVStart || cell.VLen < MinWordLength {
				continue
			}
			cells := make([]*Cell, cell.VLen)
			for i := 0; i < cell.VLen; i++ {
				cells[i] = g.Cells[row+i][col]
			}
			entries = append(entries, &Entry{
				Number: cell.AnswerNumber, Direction: DOWN,
				StartRow: row, StartCol: col, Length: cell.VLen, Cells: cells,
			})
		}
	}

	g.Entries = entries
}
