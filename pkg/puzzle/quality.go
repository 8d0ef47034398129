package puzzle

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/nicklafarge/crosscosmo/internal/models"
	"github.com/nicklafarge/crosscosmo/pkg/grid"
	"github.com/nicklafarge/crosscosmo/pkg/lexicon"
)

// QualityScorer scores assembled puzzles against NYT-style construction
// standards. It works directly on models.Puzzle so the same scorer backs
// both the generation pipeline (scoring freshly filled candidates) and the
// admin CLI's standalone validate/quality commands (scoring a puzzle file
// with no generation context at all).
type QualityScorer struct {
	scores       map[string]int // word -> quality score (0-100), from the backing lexicon
	crosswordese map[string]bool
}

// QualityReport contains detailed quality metrics for a puzzle
type QualityReport struct {
	OverallScore    float64           `json:"overallScore"`    // 0-100
	Valid           bool              `json:"valid"`           // Passes all requirements
	Errors          []string          `json:"errors"`          // Blocking issues
	Warnings        []string          `json:"warnings"`        // Quality concerns
	Metrics         QualityMetrics    `json:"metrics"`         // Detailed metrics
	ClueAnalysis    []ClueQualityItem `json:"clueAnalysis"`    // Per-clue analysis
	GridAnalysis    GridQualityReport `json:"gridAnalysis"`    // Grid analysis
	Recommendations []string          `json:"recommendations"` // Improvement suggestions
}

// QualityMetrics contains numeric quality measurements
type QualityMetrics struct {
	AverageWordScore       float64 `json:"averageWordScore"`       // 0-100
	ThreeLetterWordPercent float64 `json:"threeLetterWordPercent"` // Percentage of 3-letter words
	CrosswordesePercent    float64 `json:"crosswordesePercent"`    // Percentage of crosswordese
	AverageWordLength      float64 `json:"averageWordLength"`      // Average word length
	BlackSquarePercent     float64 `json:"blackSquarePercent"`     // Black square density
	LongestWord            int     `json:"longestWord"`            // Length of longest word
	ShortestWord           int     `json:"shortestWord"`           // Length of shortest word
	TotalWords             int     `json:"totalWords"`              // Total word count
	UniqueLetters          int     `json:"uniqueLetters"`           // Number of unique letters used
	SymmetryType           string  `json:"symmetryType"`            // Type of symmetry
}

// ClueQualityItem contains quality info for a single clue
type ClueQualityItem struct {
	Number    int      `json:"number"`
	Direction string   `json:"direction"`
	Answer    string   `json:"answer"`
	Clue      string   `json:"clue"`
	Score     float64  `json:"score"`  // 0-100
	Issues    []string `json:"issues"` // Any problems found
}

// GridQualityReport contains grid-specific quality analysis
type GridQualityReport struct {
	HasRotationalSymmetry bool     `json:"hasRotationalSymmetry"`
	IsFullyConnected      bool     `json:"isFullyConnected"`
	AllCellsCrossed       bool     `json:"allCellsCrossed"`
	HasShortWords         bool     `json:"hasShortWords"`
	ShortWordLocations    []string `json:"shortWordLocations"`
	ObscureCrossings      []string `json:"obscureCrossings"` // Two obscure words crossing
}

// QualityThresholds defines acceptable quality levels
type QualityThresholds struct {
	MinOverallScore        float64 // Minimum overall score (0-100)
	MinAverageWordScore    float64 // Minimum average word score
	MaxThreeLetterPercent  float64 // Maximum 3-letter word percentage
	MaxCrosswordesePercent float64 // Maximum crosswordese percentage
	MaxBlackSquarePercent  float64 // Maximum black square density
	MinAverageWordLength   float64 // Minimum average word length
}

// DefaultThresholds returns standard quality thresholds
func DefaultThresholds() QualityThresholds {
	return QualityThresholds{
		MinOverallScore:        60.0,
		MinAverageWordScore:    40.0,
		MaxThreeLetterPercent:  20.0,
		MaxCrosswordesePercent: 5.0,
		MaxBlackSquarePercent:  17.0,
		MinAverageWordLength:   4.5,
	}
}

// HighQualityThresholds returns stricter thresholds for premium puzzles
func HighQualityThresholds() QualityThresholds {
	return QualityThresholds{
		MinOverallScore:        75.0,
		MinAverageWordScore:    50.0,
		MaxThreeLetterPercent:  15.0,
		MaxCrosswordesePercent: 2.0,
		MaxBlackSquarePercent:  16.0,
		MinAverageWordLength:   5.0,
	}
}

// crosswordeseWords are common crossword-only words that should be limited
// but not completely banned.
var crosswordeseWords = []string{
	"OREO", "ERIE", "ALOE", "EPEE", "ESNE", "ANOA", "UNAU",
	"ETUI", "OLEO", "OLIO", "OAST", "OGEE", "ALEE", "ASEA",
	"ARIA", "AREA", "EDEN", "EMIT", "EMIR", "ELAN", "ERNE",
	"OSSA", "OTIC", "OMIT", "ORAL", "EWER", "EASE", "EAVE",
	"APSE", "ALGA", "AGUE", "AGIO", "AGEE", "ANTE", "ANTI",
	"ATOP", "AIDE", "ACME", "ACRE", "EDNA", "ELBA", "ELMS",
	"EDDY", "EARL", "EASE", "EKED", "EKED", "ELHI", "ELEM",
	"EELS", "EBON", "EBBS", "ETAS", "ETCH", "ETNA", "EURO",
}

// NewQualityScorer creates a quality scorer. When lex is non-nil its word
// scores back GetWordScore; unknown words (or a nil lexicon, for ad hoc
// CLI validation of a puzzle file with no corpus in hand) fall back to a
// flat default score.
func NewQualityScorer(lex *lexicon.Lexicon) *QualityScorer {
	qs := &QualityScorer{
		scores:       make(map[string]int),
		crosswordese: make(map[string]bool),
	}
	for _, w := range crosswordeseWords {
		qs.crosswordese[w] = true
	}
	if lex != nil {
		for _, w := range lex.Words() {
			qs.scores[w.Text] = w.Score
		}
	}
	return qs
}

// GetWordScore returns the quality score for a word (0-100)
func (qs *QualityScorer) GetWordScore(word string) int {
	if score, ok := qs.scores[strings.ToUpper(word)]; ok {
		return score
	}
	return 40
}

// IsCrosswordese returns true if the word is overused in crosswords
func (qs *QualityScorer) IsCrosswordese(word string) bool {
	return qs.crosswordese[strings.ToUpper(word)]
}

// ScorePuzzle generates a comprehensive quality report for a puzzle
func (qs *QualityScorer) ScorePuzzle(puzzle *models.Puzzle) *QualityReport {
	report := &QualityReport{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	report.GridAnalysis = qs.analyzeGrid(puzzle)
	if !report.GridAnalysis.HasRotationalSymmetry {
		report.Errors = append(report.Errors, "Grid lacks 180° rotational symmetry")
		report.Valid = false
	}
	if !report.GridAnalysis.IsFullyConnected {
		report.Errors = append(report.Errors, "Grid has isolated sections")
		report.Valid = false
	}
	if !report.GridAnalysis.AllCellsCrossed {
		report.Errors = append(report.Errors, "Some cells are not fully crossed")
		report.Valid = false
	}
	if report.GridAnalysis.HasShortWords {
		report.Errors = append(report.Errors, fmt.Sprintf("Grid contains 2-letter words: %v", report.GridAnalysis.ShortWordLocations))
		report.Valid = false
	}

	duplicates := qs.findDuplicateAnswers(puzzle)
	if len(duplicates) > 0 {
		report.Errors = append(report.Errors, fmt.Sprintf("Duplicate answers found: %v", duplicates))
		report.Valid = false
	}

	report.Metrics = qs.calculateMetrics(puzzle)

	thresholds := DefaultThresholds()
	if report.Metrics.ThreeLetterWordPercent > thresholds.MaxThreeLetterPercent {
		report.Warnings = append(report.Warnings, fmt.Sprintf("High 3-letter word percentage: %.1f%% (max: %.1f%%)", report.Metrics.ThreeLetterWordPercent, thresholds.MaxThreeLetterPercent))
	}
	if report.Metrics.CrosswordesePercent > thresholds.MaxCrosswordesePercent {
		report.Warnings = append(report.Warnings, fmt.Sprintf("High crosswordese percentage: %.1f%% (max: %.1f%%)", report.Metrics.CrosswordesePercent, thresholds.MaxCrosswordesePercent))
	}
	if report.Metrics.BlackSquarePercent > thresholds.MaxBlackSquarePercent {
		report.Warnings = append(report.Warnings, fmt.Sprintf("High black square density: %.1f%% (max: %.1f%%)", report.Metrics.BlackSquarePercent, thresholds.MaxBlackSquarePercent))
	}
	if report.Metrics.AverageWordLength < thresholds.MinAverageWordLength {
		report.Warnings = append(report.Warnings, fmt.Sprintf("Low average word length: %.2f (min: %.2f)", report.Metrics.AverageWordLength, thresholds.MinAverageWordLength))
	}

	report.ClueAnalysis = qs.analyzeClues(puzzle)
	for _, clueItem := range report.ClueAnalysis {
		for _, issue := range clueItem.Issues {
			if strings.Contains(issue, "answer appears in clue") {
				report.Errors = append(report.Errors, fmt.Sprintf("Clue %d-%s: %s", clueItem.Number, clueItem.Direction, issue))
				report.Valid = false
			} else {
				report.Warnings = append(report.Warnings, fmt.Sprintf("Clue %d-%s: %s", clueItem.Number, clueItem.Direction, issue))
			}
		}
	}

	if len(report.GridAnalysis.ObscureCrossings) > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("Obscure word crossings: %v", report.GridAnalysis.ObscureCrossings))
	}

	report.OverallScore = qs.calculateOverallScore(report)
	report.Recommendations = qs.generateRecommendations(report)

	return report
}

func (qs *QualityScorer) analyzeGrid(puzzle *models.Puzzle) GridQualityReport {
	report := GridQualityReport{}

	report.HasRotationalSymmetry = qs.checkSymmetry(puzzle)
	report.IsFullyConnected = qs.checkConnectivity(puzzle)
	report.AllCellsCrossed = qs.checkAllCellsCrossed(puzzle)

	shortWords := qs.findShortWords(puzzle)
	report.HasShortWords = len(shortWords) > 0
	report.ShortWordLocations = shortWords

	report.ObscureCrossings = qs.findObscureCrossings(puzzle)

	return report
}

// checkSymmetry and checkConnectivity delegate to pkg/grid rather than
// re-walking the black-square pattern by hand: BuildPatternGrid's geometry
// pass already derives the same adjacency/mirror structure pkg/grid.Grid
// needs for IsSymmetric/IsConnected, so there is no separate algorithm to
// maintain here.
func (qs *QualityScorer) checkSymmetry(puzzle *models.Puzzle) bool {
	g, err := BuildPatternGrid(puzzle, nil)
	if err != nil {
		return false
	}
	// Newspaper-style crosswords are graded against 180-degree rotational
	// symmetry specifically, so check against that mode regardless of what
	// (if anything) generated this puzzle configured.
	g.Symmetry = grid.SymmetryRotational
	return g.IsSymmetric()
}

func (qs *QualityScorer) checkConnectivity(puzzle *models.Puzzle) bool {
	g, err := BuildPatternGrid(puzzle, nil)
	if err != nil {
		return false
	}
	return g.IsConnected()
}

// checkAllCellsCrossed reports whether every non-black cell participates in
// both a horizontal and a vertical run of length >= 2, using the run
// lengths pkg/grid already derives per cell rather than re-scanning
// neighbors by hand.
func (qs *QualityScorer) checkAllCellsCrossed(puzzle *models.Puzzle) bool {
	g, err := BuildPatternGrid(puzzle, nil)
	if err != nil {
		return false
	}

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			cell := g.Cells[y][x]
			if cell.Status == grid.BLACK {
				continue
			}
			if cell.HLen < 2 || cell.VLen < 2 {
				return false
			}
		}
	}

	return true
}

func (qs *QualityScorer) findShortWords(puzzle *models.Puzzle) []string {
	var shortWords []string
	h := puzzle.GridHeight
	w := puzzle.GridWidth

	for y := 0; y < h; y++ {
		wordLen := 0
		startX := 0
		for x := 0; x <= w; x++ {
			if x < w && puzzle.Grid[y][x].Letter != nil {
				if wordLen == 0 {
					startX = x
				}
				wordLen++
			} else {
				if wordLen > 0 && wordLen < 3 {
					shortWords = append(shortWords, fmt.Sprintf("across at (%d,%d) len=%d", startX, y, wordLen))
				}
				wordLen = 0
			}
		}
	}

	for x := 0; x < w; x++ {
		wordLen := 0
		startY := 0
		for y := 0; y <= h; y++ {
			if y < h && puzzle.Grid[y][x].Letter != nil {
				if wordLen == 0 {
					startY = y
				}
				wordLen++
			} else {
				if wordLen > 0 && wordLen < 3 {
					shortWords = append(shortWords, fmt.Sprintf("down at (%d,%d) len=%d", x, startY, wordLen))
				}
				wordLen = 0
			}
		}
	}

	return shortWords
}

func (qs *QualityScorer) findDuplicateAnswers(puzzle *models.Puzzle) []string {
	answers := make(map[string]int)
	var duplicates []string

	for _, clue := range puzzle.CluesAcross {
		answers[strings.ToUpper(clue.Answer)]++
	}
	for _, clue := range puzzle.CluesDown {
		answers[strings.ToUpper(clue.Answer)]++
	}

	for answer, count := range answers {
		if count > 1 {
			duplicates = append(duplicates, answer)
		}
	}

	return duplicates
}

func (qs *QualityScorer) findObscureCrossings(puzzle *models.Puzzle) []string {
	var obscureCrossings []string

	type scoredAnswer struct {
		answer    string
		score     int
		direction string
	}

	var answers []scoredAnswer
	for _, clue := range puzzle.CluesAcross {
		answers = append(answers, scoredAnswer{clue.Answer, qs.GetWordScore(clue.Answer), "across"})
	}
	for _, clue := range puzzle.CluesDown {
		answers = append(answers, scoredAnswer{clue.Answer, qs.GetWordScore(clue.Answer), "down"})
	}

	obscureThreshold := 30
	var obscure []scoredAnswer
	for _, a := range answers {
		if a.score < obscureThreshold {
			obscure = append(obscure, a)
		}
	}

	if len(obscure) >= 2 {
		for i := 0; i < len(obscure); i++ {
			for j := i + 1; j < len(obscure); j++ {
				if obscure[i].direction != obscure[j].direction {
					obscureCrossings = append(obscureCrossings, fmt.Sprintf("%s (%d) x %s (%d)", obscure[i].answer, obscure[i].score, obscure[j].answer, obscure[j].score))
				}
			}
		}
	}

	return obscureCrossings
}

func (qs *QualityScorer) calculateMetrics(puzzle *models.Puzzle) QualityMetrics {
	metrics := QualityMetrics{}

	var allAnswers []string
	for _, clue := range puzzle.CluesAcross {
		allAnswers = append(allAnswers, clue.Answer)
	}
	for _, clue := range puzzle.CluesDown {
		allAnswers = append(allAnswers, clue.Answer)
	}

	metrics.TotalWords = len(allAnswers)

	if metrics.TotalWords == 0 {
		return metrics
	}

	var totalScore float64
	var totalLength int
	var threeLetterCount int
	var crosswordeseCount int
	longestWord := 0
	shortestWord := 100
	uniqueLetters := make(map[rune]bool)

	for _, answer := range allAnswers {
		score := qs.GetWordScore(answer)
		totalScore += float64(score)

		length := len(answer)
		totalLength += length

		if length == 3 {
			threeLetterCount++
		}
		if length > longestWord {
			longestWord = length
		}
		if length < shortestWord {
			shortestWord = length
		}

		if qs.IsCrosswordese(answer) {
			crosswordeseCount++
		}

		for _, r := range answer {
			uniqueLetters[unicode.ToUpper(r)] = true
		}
	}

	metrics.AverageWordScore = totalScore / float64(metrics.TotalWords)
	metrics.AverageWordLength = float64(totalLength) / float64(metrics.TotalWords)
	metrics.ThreeLetterWordPercent = float64(threeLetterCount) / float64(metrics.TotalWords) * 100
	metrics.CrosswordesePercent = float64(crosswordeseCount) / float64(metrics.TotalWords) * 100
	metrics.LongestWord = longestWord
	metrics.ShortestWord = shortestWord
	metrics.UniqueLetters = len(uniqueLetters)

	totalCells := puzzle.GridWidth * puzzle.GridHeight
	blackCells := 0
	for y := 0; y < puzzle.GridHeight; y++ {
		for x := 0; x < puzzle.GridWidth; x++ {
			if puzzle.Grid[y][x].Letter == nil {
				blackCells++
			}
		}
	}
	metrics.BlackSquarePercent = float64(blackCells) / float64(totalCells) * 100

	if qs.checkSymmetry(puzzle) {
		metrics.SymmetryType = "180° rotational"
	} else {
		metrics.SymmetryType = "none"
	}

	return metrics
}

func (qs *QualityScorer) analyzeClues(puzzle *models.Puzzle) []ClueQualityItem {
	var items []ClueQualityItem

	for _, clue := range puzzle.CluesAcross {
		items = append(items, qs.analyzeClue(clue, "across"))
	}
	for _, clue := range puzzle.CluesDown {
		items = append(items, qs.analyzeClue(clue, "down"))
	}

	return items
}

func (qs *QualityScorer) analyzeClue(clue models.Clue, direction string) ClueQualityItem {
	item := ClueQualityItem{
		Number:    clue.Number,
		Direction: direction,
		Answer:    clue.Answer,
		Clue:      clue.Text,
		Score:     70.0,
		Issues:    []string{},
	}

	answerUpper := strings.ToUpper(clue.Answer)
	clueUpper := strings.ToUpper(clue.Text)

	if strings.Contains(clueUpper, answerUpper) {
		item.Issues = append(item.Issues, "answer appears in clue")
		item.Score = 0
		return item
	}

	if len(answerUpper) >= 4 {
		for i := 0; i <= len(answerUpper)-4; i++ {
			substr := answerUpper[i : i+4]
			if strings.Contains(clueUpper, substr) {
				item.Issues = append(item.Issues, fmt.Sprintf("partial answer '%s' in clue", substr))
				item.Score -= 20
				break
			}
		}
	}

	wordCount := len(strings.Fields(clue.Text))
	if wordCount < 2 {
		item.Issues = append(item.Issues, "clue too short")
		item.Score -= 10
	} else if wordCount > 15 {
		item.Issues = append(item.Issues, "clue too long")
		item.Score -= 5
	}

	if strings.Contains(clue.Text, "___") {
		item.Score -= 5
	}

	if strings.HasSuffix(clue.Text, "?") {
		item.Score += 5
	}

	wordScore := qs.GetWordScore(clue.Answer)
	if wordScore < 30 {
		item.Issues = append(item.Issues, fmt.Sprintf("obscure answer (score: %d)", wordScore))
		item.Score -= 10
	}

	if item.Score < 0 {
		item.Score = 0
	}
	if item.Score > 100 {
		item.Score = 100
	}

	return item
}

func (qs *QualityScorer) calculateOverallScore(report *QualityReport) float64 {
	if !report.Valid {
		return 0.0
	}

	score := 70.0

	if report.Metrics.AverageWordScore >= 50 {
		score += 10
	} else if report.Metrics.AverageWordScore >= 40 {
		score += 5
	} else if report.Metrics.AverageWordScore < 30 {
		score -= 10
	}

	if report.Metrics.ThreeLetterWordPercent <= 15 {
		score += 5
	} else if report.Metrics.ThreeLetterWordPercent > 25 {
		score -= 10
	}

	if report.Metrics.CrosswordesePercent <= 2 {
		score += 5
	} else if report.Metrics.CrosswordesePercent > 5 {
		score -= 10
	}

	if report.Metrics.AverageWordLength >= 5.0 {
		score += 5
	} else if report.Metrics.AverageWordLength < 4.0 {
		score -= 10
	}

	if report.Metrics.BlackSquarePercent <= 16 {
		score += 5
	} else if report.Metrics.BlackSquarePercent > 18 {
		score -= 5
	}

	score -= float64(len(report.Warnings)) * 2

	var avgClueScore float64
	for _, clue := range report.ClueAnalysis {
		avgClueScore += clue.Score
	}
	if len(report.ClueAnalysis) > 0 {
		avgClueScore /= float64(len(report.ClueAnalysis))
	}
	score += (avgClueScore - 70) / 5

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score
}

func (qs *QualityScorer) generateRecommendations(report *QualityReport) []string {
	var recs []string

	if !report.Valid {
		recs = append(recs, "Fix all errors before this puzzle can be published")
		return recs
	}

	if report.Metrics.ThreeLetterWordPercent > 20 {
		recs = append(recs, "Consider replacing some 3-letter words with longer entries")
	}
	if report.Metrics.CrosswordesePercent > 3 {
		recs = append(recs, "Reduce overused crossword words (crosswordese)")
	}
	if report.Metrics.AverageWordScore < 45 {
		recs = append(recs, "Consider using more common, higher-quality words")
	}
	if report.Metrics.BlackSquarePercent > 17 {
		recs = append(recs, "Consider reducing black square count for more letter space")
	}
	if len(report.GridAnalysis.ObscureCrossings) > 0 {
		recs = append(recs, "Avoid crossing two obscure words - solvers need at least one fair crossing")
	}

	lowScoreClues := 0
	for _, clue := range report.ClueAnalysis {
		if clue.Score < 50 {
			lowScoreClues++
		}
	}
	if lowScoreClues > 0 {
		recs = append(recs, fmt.Sprintf("Review %d clues with quality issues", lowScoreClues))
	}

	if report.OverallScore >= 85 {
		recs = append(recs, "Excellent puzzle! Ready for publication.")
	} else if report.OverallScore >= 70 {
		recs = append(recs, "Good puzzle with minor improvements possible")
	}

	return recs
}

// MeetsThresholds checks if a puzzle meets the specified quality thresholds
func (qs *QualityScorer) MeetsThresholds(report *QualityReport, thresholds QualityThresholds) bool {
	if !report.Valid {
		return false
	}
	if report.OverallScore < thresholds.MinOverallScore {
		return false
	}
	if report.Metrics.AverageWordScore < thresholds.MinAverageWordScore {
		return false
	}
	if report.Metrics.ThreeLetterWordPercent > thresholds.MaxThreeLetterPercent {
		return false
	}
	if report.Metrics.CrosswordesePercent > thresholds.MaxCrosswordesePercent {
		return false
	}
	if report.Metrics.BlackSquarePercent > thresholds.MaxBlackSquarePercent {
		return false
	}
	if report.Metrics.AverageWordLength < thresholds.MinAverageWordLength {
		return false
	}
	return true
}

// RankPuzzles ranks puzzles by quality score, best first
func (qs *QualityScorer) RankPuzzles(puzzles []*models.Puzzle) []*models.Puzzle {
	type scoredPuzzle struct {
		puzzle *models.Puzzle
		score  float64
	}

	scored := make([]scoredPuzzle, len(puzzles))
	for i, p := range puzzles {
		scored[i] = scoredPuzzle{p, qs.ScorePuzzle(p).OverallScore}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	result := make([]*models.Puzzle, len(puzzles))
	for i, sp := range scored {
		result[i] = sp.puzzle
	}

	return result
}
