package puzzle

import "github.com/nicklafarge/crosscosmo/internal/models"

// CompletionStatus summarizes how much of a puzzle's solution a player's
// (or a shared) grid of entered values currently matches.
type CompletionStatus struct {
	TotalCells   int
	CorrectCells int
	Complete     bool
}

// Progress returns CorrectCells/TotalCells as a percentage in [0, 100].
// It returns 0 for a puzzle with no white cells rather than dividing by zero.
func (s CompletionStatus) Progress() float64 {
	if s.TotalCells == 0 {
		return 0
	}
	return float64(s.CorrectCells) / float64(s.TotalCells) * 100
}

// CheckCompletion compares a solved puzzle against a player's (or the
// room's shared) entered cell values and reports how close it is to
// complete. cells is indexed [row][col] the same way puz.Grid is; it may
// be shorter than puz.Grid (e.g. a grid state created before the puzzle
// was resized) — any cell out of range counts as incorrect.
func CheckCompletion(puz *models.Puzzle, cells [][]models.Cell) CompletionStatus {
	status := CompletionStatus{Complete: true}
	if puz == nil {
		status.Complete = false
		return status
	}

	for row := range puz.Grid {
		for col := range puz.Grid[row] {
			expected := puz.Grid[row][col].Letter
			if expected == nil {
				continue // black square
			}
			status.TotalCells++

			if row >= len(cells) || col >= len(cells[row]) {
				status.Complete = false
				continue
			}
			actual := cells[row][col].Value
			if actual != nil && *actual == *expected {
				status.CorrectCells++
			} else {
				status.Complete = false
			}
		}
	}

	if status.TotalCells == 0 {
		status.Complete = false
	}
	return status
}
