package grid

import "testing"

func TestSeedBlackSquares_Reproducible(t *testing.T) {
	cfg := SeedConfig{Seed: 42, BlackDensity: 0.1}

	g1 := NewEmptyGrid(GridConfig{Rows: 11, Cols: 11})
	g1.SeedBlackSquares(cfg)

	g2 := NewEmptyGrid(GridConfig{Rows: 11, Cols: 11})
	g2.SeedBlackSquares(cfg)

	for row := 0; row < g1.Rows; row++ {
		for col := 0; col < g1.Cols; col++ {
			if g1.Cells[row][col].Status != g2.Cells[row][col].Status {
				t.Fatalf("same seed produced different patterns at (%d,%d)", row, col)
			}
		}
	}
}

func TestSeedBlackSquares_CenterStaysWhite(t *testing.T) {
	g := NewEmptyGrid(GridConfig{Rows: 11, Cols: 11})
	g.SeedBlackSquares(SeedConfig{Seed: 7, BlackDensity: 0.5})
	if g.Cells[5][5].Status == BLACK {
		t.Fatal("center cell must stay white so connectivity checks have a starting point")
	}
}

func TestSeedBlackSquares_OnlyTopLeftQuadrant(t *testing.T) {
	g := NewEmptyGrid(GridConfig{Rows: 11, Cols: 11})
	g.SeedBlackSquares(SeedConfig{Seed: 1, BlackDensity: 0.3})
	for row := 5; row < g.Rows; row++ {
		for col := 5; col < g.Cols; col++ {
			if g.Cells[row][col].Status == BLACK {
				t.Fatalf("SeedBlackSquares should only touch the top-left quadrant, found black at (%d,%d)", row, col)
			}
		}
	}
}
