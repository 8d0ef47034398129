package puzzle

import "testing"

func TestCheckSymmetry_SamplePuzzleIsRotationallySymmetric(t *testing.T) {
	qs := NewQualityScorer(nil)
	if !qs.checkSymmetry(SamplePuzzle()) {
		t.Error("SamplePuzzle's black-square pattern is 180-degree symmetric and should pass")
	}
}

func TestCheckSymmetry_DetectsAsymmetry(t *testing.T) {
	qs := NewQualityScorer(nil)
	puz := SamplePuzzle()
	puz.Grid[0][0].Letter = nil // blacken a corner with no symmetric counterpart change
	if qs.checkSymmetry(puz) {
		t.Error("expected asymmetric pattern to fail checkSymmetry")
	}
}

func TestCheckConnectivity_SamplePuzzleIsOneComponent(t *testing.T) {
	qs := NewQualityScorer(nil)
	if !qs.checkConnectivity(SamplePuzzle()) {
		t.Error("SamplePuzzle's white cells are all reachable from one another")
	}
}

func TestCheckAllCellsCrossed_SamplePuzzleHasIsolatedRuns(t *testing.T) {
	qs := NewQualityScorer(nil)
	// SamplePuzzle is a small hand-built demo grid, not a fully-crossed
	// construction, so some white cells only belong to one run.
	if qs.checkAllCellsCrossed(SamplePuzzle()) {
		t.Error("expected SamplePuzzle to have at least one cell crossed in only one direction")
	}
}

func TestGetWordScore_FallsBackWhenUnknown(t *testing.T) {
	qs := NewQualityScorer(nil)
	if got := qs.GetWordScore("ZZYZX"); got != 40 {
		t.Errorf("GetWordScore for an unknown word = %d, want 40", got)
	}
}

func TestIsCrosswordese_KnownWord(t *testing.T) {
	qs := NewQualityScorer(nil)
	if !qs.IsCrosswordese("ERNE") {
		t.Error("ERNE is a classic crosswordese entry and should be flagged")
	}
	if qs.IsCrosswordese("COMPUTER") {
		t.Error("COMPUTER is not crosswordese")
	}
}

func TestScorePuzzle_ProducesAnOverallScore(t *testing.T) {
	qs := NewQualityScorer(nil)
	report := qs.ScorePuzzle(SamplePuzzle())
	if report.OverallScore < 0 || report.OverallScore > 100 {
		t.Errorf("OverallScore = %f, want a value in [0, 100]", report.OverallScore)
	}
}
