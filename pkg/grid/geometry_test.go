package grid

import "testing"

func TestRecomputeGeometry_AllWhiteGrid(t *testing.T) {
	g := NewEmptyGrid(GridConfig{Rows: 5, Cols: 5})
	corner := g.Cells[0][0]
	if !corner.IsHStart || !corner.IsVStart {
		t.Fatal("(0,0) should start both a horizontal and vertical run")
	}
	if corner.HLen != 5 || corner.VLen != 5 {
		t.Fatalf("(0,0) HLen=%d VLen=%d, want 5,5", corner.HLen, corner.VLen)
	}
	if corner.AnswerNumber != 1 {
		t.Fatalf("(0,0) AnswerNumber = %d, want 1", corner.AnswerNumber)
	}
}

func TestRecomputeGeometry_BlackSplitsRuns(t *testing.T) {
	g := NewEmptyGrid(GridConfig{Rows: 5, Cols: 5})
	if err := g.Set(2, 2, BlackSentinel); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if g.Cells[2][2].Status != BLACK {
		t.Fatal("(2,2) should be BLACK")
	}
	if g.Cells[2][2].HLen != 0 || g.Cells[2][2].VLen != 0 {
		t.Fatal("BLACK cell should have zero run lengths")
	}
	if g.Cells[2][1].HLen != 2 {
		t.Fatalf("(2,1) HLen = %d, want 2 (cols 0-1)", g.Cells[2][1].HLen)
	}
	if g.Cells[2][3].HLen != 2 {
		t.Fatalf("(2,3) HLen = %d, want 2 (cols 3-4)", g.Cells[2][3].HLen)
	}
	if !g.Cells[2][3].IsHStart {
		t.Fatal("(2,3) should start the run after the black cell")
	}
}

func TestComputeEntries_OnlyRunsAtLeastMinLength(t *testing.T) {
	g := NewEmptyGrid(GridConfig{Rows: 5, Cols: 5})
	// Blacken (0,2) so row 0 splits into a length-2 run and a length-2 run,
	// both below MinWordLength and so excluded from Entries.
	if err := g.Set(0, 2, BlackSentinel); err != nil {
		t.Fatalf("Set: %v", err)
	}
	for _, e := range g.Entries {
		if e.Direction == ACROSS && e.StartRow == 0 {
			t.Fatalf("row 0 should have no ACROSS entries after splitting into short runs, found %+v", e)
		}
	}
}

func TestComputeEntries_CellsOrderedAlongSlot(t *testing.T) {
	g := NewEmptyGrid(GridConfig{Rows: 5, Cols: 5})
	var across *Entry
	for _, e := range g.Entries {
		if e.Direction == ACROSS && e.StartRow == 0 && e.StartCol == 0 {
			across = e
		}
	}
	if across == nil {
		t.Fatal("expected an ACROSS entry starting at (0,0)")
	}
	for i, c := range across.Cells {
		if c.Row != 0 || c.Col != i {
			t.Fatalf("entry cell %d = (%d,%d), want (0,%d)", i, c.Row, c.Col, i)
		}
	}
}
