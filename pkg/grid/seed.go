package grid

import "math/rand"

// SeedConfig configures random black-square placement.
type SeedConfig struct {
	Seed         int64   // random seed for reproducibility
	BlackDensity float64 // fraction of cells to blacken (0.06-0.12 typical)
}

// SeedBlackSquares randomly places black squares in the top-left quadrant of
// the grid, leaving the center cell white so connectivity checks have a
// starting point. Callers follow this with EnforceSymmetry to mirror the
// pattern per the grid's configured Symmetry mode.
func (g *Grid) SeedBlackSquares(config SeedConfig) {
	r := rand.New(rand.NewSource(config.Seed))

	totalCells := g.Rows * g.Cols
	targetBlackCells := int(float64(totalCells) * config.BlackDensity)
	blacksToPlace := targetBlackCells / 2

	quadrantRows, quadrantCols := g.Rows/2, g.Cols/2
	centerRow, centerCol := g.Rows/2, g.Cols/2

	var positions []struct{ row, col int }
	for row := 0; row < quadrantRows; row++ {
		for col := 0; col < quadrantCols; col++ {
			positions = append(positions, struct{ row, col int }{row, col})
		}
	}

	r.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})

	placed := 0
	for i := 0; i < len(positions) && placed < blacksToPlace; i++ {
		pos := positions[i]
		g.Cells[pos.row][pos.col].Status = BLACK
		placed++
	}

	g.Cells[centerRow][centerCol].Status = EMPTY
}
