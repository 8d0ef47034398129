package puzzle

import (
	"context"
	"testing"

	"github.com/nicklafarge/crosscosmo/internal/models"
	"github.com/nicklafarge/crosscosmo/pkg/lexicon"
)

func buildLexicon(t *testing.T, words ...string) *lexicon.Lexicon {
	t.Helper()
	inputs := make([]lexicon.WordInput, len(words))
	for i, w := range words {
		inputs[i] = lexicon.WordInput{Text: w, Score: 100}
	}
	return lexicon.Build(inputs)
}

func threeByThreeOpenPuzzle() *models.Puzzle {
	row := func() []models.GridCell {
		return []models.GridCell{{}, {}, {}}
	}
	return &models.Puzzle{
		GridWidth:  3,
		GridHeight: 3,
		Grid:       [][]models.GridCell{row(), row(), row()},
	}
}

func TestBuildPatternGrid_ReadsBlackPatternOnly(t *testing.T) {
	puz := threeByThreeOpenPuzzle()
	letter := "Z"
	puz.Grid[1][1].Letter = &letter // a pre-existing letter, not black

	g, err := BuildPatternGrid(puz, nil)
	if err != nil {
		t.Fatalf("BuildPatternGrid: %v", err)
	}
	if g.Cells[1][1].Letter != 0 {
		t.Errorf("BuildPatternGrid must ignore existing letters, got %q", g.Cells[1][1].Letter)
	}

	puz.Grid[0][0].Letter = nil // black square
	g, err = BuildPatternGrid(puz, nil)
	if err != nil {
		t.Fatalf("BuildPatternGrid: %v", err)
	}
	if g.Cells[0][0].Status.String() != "black" {
		t.Errorf("expected (0,0) black, got %s", g.Cells[0][0].Status)
	}
}

func TestSolveGrid_FillsEveryNonBlackCell(t *testing.T) {
	// SAT and ERE make a duplicate-free fill possible:
	// SEA/ART/TEE across, SAT/ERE/ATE down.
	lex := buildLexicon(t, "CAT", "ART", "TEE", "CAR", "ATE", "RED", "TAR", "ERA", "SEA", "SAT", "ERE")
	puz := threeByThreeOpenPuzzle()

	fills, err := SolveGrid(context.Background(), lex, puz)
	if err != nil {
		t.Fatalf("SolveGrid: %v", err)
	}
	if len(fills) != 9 {
		t.Fatalf("expected 9 filled cells, got %d", len(fills))
	}
	for _, f := range fills {
		if len(f.Letter) != 1 || f.Letter[0] < 'A' || f.Letter[0] > 'Z' {
			t.Errorf("cell (%d,%d) has invalid letter %q", f.Row, f.Col, f.Letter)
		}
	}
	// puz itself must be untouched
	if puz.Grid[0][0].Letter != nil {
		t.Error("SolveGrid must not mutate the input puzzle")
	}
}

func TestSolveGrid_NilLexicon(t *testing.T) {
	puz := threeByThreeOpenPuzzle()
	if _, err := SolveGrid(context.Background(), nil, puz); err == nil {
		t.Error("expected an error with a nil lexicon")
	}
}

func TestSolveGrid_NoSolutionRestoresNothingObservable(t *testing.T) {
	lex := buildLexicon(t, "CAT") // far too sparse for a 3x3 with no blocks
	puz := threeByThreeOpenPuzzle()

	if _, err := SolveGrid(context.Background(), lex, puz); err == nil {
		t.Error("expected ErrNoSolution from too sparse a lexicon")
	}
}
