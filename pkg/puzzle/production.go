package puzzle

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nicklafarge/crosscosmo/internal/models"
	"github.com/nicklafarge/crosscosmo/pkg/grid"
)

// DayDifficulty mirrors the newspaper convention of ramping difficulty
// across the week (Monday easiest, Saturday hardest, Sunday a larger but
// mid-difficulty grid).
type DayDifficulty string

const (
	DayMonday    DayDifficulty = "monday"
	DayTuesday   DayDifficulty = "tuesday"
	DayWednesday DayDifficulty = "wednesday"
	DayThursday  DayDifficulty = "thursday"
	DayFriday    DayDifficulty = "friday"
	DaySaturday  DayDifficulty = "saturday"
	DaySunday    DayDifficulty = "sunday"
)

// gridDifficulty maps the day-of-week convention onto the solver's
// difficulty axis (which controls black-square density and fill
// constraints, not clue wording).
func (d DayDifficulty) gridDifficulty() grid.Difficulty {
	switch d {
	case DayMonday, DayTuesday:
		return grid.Easy
	case DayWednesday, DayThursday, DaySunday:
		return grid.Medium
	case DayFriday, DaySaturday:
		return grid.Hard
	default:
		return grid.Medium
	}
}

func (d DayDifficulty) modelsDifficulty() models.Difficulty {
	switch d {
	case DayMonday, DayTuesday:
		return models.DifficultyEasy
	case DayWednesday, DayThursday, DaySunday:
		return models.DifficultyMedium
	case DayFriday, DaySaturday:
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}

// ProductionPipeline runs the full generate-fill-clue-score pipeline
// through Generator and QualityScorer, producing several candidates per
// request and keeping the best.
type ProductionPipeline struct {
	generator     *Generator
	qualityScorer *QualityScorer
	config        PipelineConfig
}

// PipelineConfig configures the production pipeline
type PipelineConfig struct {
	CandidatesPerBatch int           // Number of candidate puzzles to generate
	GenerationTimeout  time.Duration // Timeout for a single puzzle generation
	MinScore           int           // Minimum lexicon word score admitted to the fill
	Thresholds         QualityThresholds

	GridSpecs map[string]GridSizeSpec

	FilterOffensive   bool
	CustomBannedWords []string
}

// GridSizeSpec defines the square grid size for a named puzzle size
type GridSizeSpec struct {
	Size int
}

// BatchResult contains the results of a batch generation
type BatchResult struct {
	Generated   []*GeneratedPuzzleResult
	BestPuzzle  *GeneratedPuzzleResult
	TotalTime   time.Duration
	SuccessRate float64
	Errors      []string
}

// GeneratedPuzzleResult contains a generated puzzle with its quality report
type GeneratedPuzzleResult struct {
	Puzzle        *models.Puzzle
	QualityReport *QualityReport
	GeneratedAt   time.Time
}

// BatchGenerationRequest contains parameters for batch generation
type BatchGenerationRequest struct {
	Size       string        // "mini", "midi", "daily", "sunday"
	Difficulty DayDifficulty // Day-based difficulty
	Theme      string        // Optional theme
	TargetDate *time.Time    // Target publication date
}

// DefaultPipelineConfig returns default pipeline configuration
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		CandidatesPerBatch: 5,
		GenerationTimeout:  60 * time.Second,
		MinScore:           30,
		Thresholds:         DefaultThresholds(),
		FilterOffensive:    true,
		GridSpecs: map[string]GridSizeSpec{
			"mini":   {Size: 5},
			"midi":   {Size: 11},
			"daily":  {Size: 15},
			"sunday": {Size: 21},
		},
	}
}

// NewProductionPipeline creates a new production pipeline backed by gen
// (the lexicon + clue generator pairing already wired for the day's
// generation run) and a QualityScorer built on the same lexicon.
func NewProductionPipeline(gen *Generator, config PipelineConfig) *ProductionPipeline {
	return &ProductionPipeline{
		generator:     gen,
		qualityScorer: NewQualityScorer(gen.lexicon),
		config:        config,
	}
}

// GenerateBatch generates multiple puzzle candidates and returns the best ones
func (pp *ProductionPipeline) GenerateBatch(ctx context.Context, req *BatchGenerationRequest) (*BatchResult, error) {
	startTime := time.Now()
	result := &BatchResult{
		Generated: make([]*GeneratedPuzzleResult, 0),
		Errors:    make([]string, 0),
	}

	spec, ok := pp.config.GridSpecs[req.Size]
	if !ok {
		return nil, fmt.Errorf("unknown grid size: %s", req.Size)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0

	for i := 0; i < pp.config.CandidatesPerBatch; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			default:
			}

			puzzleResult, err := pp.generateSinglePuzzle(ctx, req, spec, idx)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Candidate %d: %v", idx, err))
				return
			}

			result.Generated = append(result.Generated, puzzleResult)
			successCount++
		}(i)
	}

	wg.Wait()

	result.SuccessRate = float64(successCount) / float64(pp.config.CandidatesPerBatch)

	if len(result.Generated) > 0 {
		sort.Slice(result.Generated, func(i, j int) bool {
			return result.Generated[i].QualityReport.OverallScore > result.Generated[j].QualityReport.OverallScore
		})
		result.BestPuzzle = result.Generated[0]
	}

	result.TotalTime = time.Since(startTime)
	return result, nil
}

func (pp *ProductionPipeline) generateSinglePuzzle(
	ctx context.Context,
	req *BatchGenerationRequest,
	spec GridSizeSpec,
	idx int,
) (*GeneratedPuzzleResult, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, pp.config.GenerationTimeout)
	defer cancel()

	config := Config{
		Size:       spec.Size,
		Difficulty: req.Difficulty.gridDifficulty(),
		Seed:       rand.Int63(),
		MinScore:   pp.config.MinScore,
		Title:      pp.generateTitle(req),
		Author:     "CrossPlay AI",
		Theme:      req.Theme,
	}

	puzzle, err := pp.generator.GeneratePuzzle(timeoutCtx, config)
	if err != nil {
		return nil, fmt.Errorf("puzzle generation failed: %w", err)
	}

	modelsPuzzle := ToModelsPuzzle(puzzle)
	modelsPuzzle.Difficulty = req.Difficulty.modelsDifficulty()
	if req.TargetDate != nil {
		dateStr := req.TargetDate.Format("2006-01-02")
		modelsPuzzle.Date = &dateStr
	}

	qualityReport := pp.qualityScorer.ScorePuzzle(modelsPuzzle)

	if pp.config.FilterOffensive {
		if issues := pp.filterContent(modelsPuzzle); len(issues) > 0 {
			return nil, fmt.Errorf("content filter failed: %v", issues)
		}
	}

	return &GeneratedPuzzleResult{
		Puzzle:        modelsPuzzle,
		QualityReport: qualityReport,
		GeneratedAt:   time.Now(),
	}, nil
}

func (pp *ProductionPipeline) generateTitle(req *BatchGenerationRequest) string {
	if req.Theme != "" {
		return req.Theme
	}

	day := strings.Title(string(req.Difficulty))
	if req.TargetDate != nil {
		return fmt.Sprintf("%s Puzzle", day)
	}
	return fmt.Sprintf("%s Crossword", day)
}

func (pp *ProductionPipeline) filterContent(puzzle *models.Puzzle) []string {
	var issues []string

	for _, banned := range pp.config.CustomBannedWords {
		bannedUpper := strings.ToUpper(banned)
		for _, clue := range puzzle.CluesAcross {
			if strings.ToUpper(clue.Answer) == bannedUpper {
				issues = append(issues, fmt.Sprintf("banned word: %s", clue.Answer))
			}
		}
		for _, clue := range puzzle.CluesDown {
			if strings.ToUpper(clue.Answer) == bannedUpper {
				issues = append(issues, fmt.Sprintf("banned word: %s", clue.Answer))
			}
		}
	}

	return issues
}

// DailyProductionSchedule manages daily puzzle production
type DailyProductionSchedule struct {
	pipeline *ProductionPipeline
	mu       sync.Mutex
	archive  map[string][]*GeneratedPuzzleResult // Date -> puzzles
}

// NewDailyProductionSchedule creates a new production schedule
func NewDailyProductionSchedule(pipeline *ProductionPipeline) *DailyProductionSchedule {
	return &DailyProductionSchedule{
		pipeline: pipeline,
		archive:  make(map[string][]*GeneratedPuzzleResult),
	}
}

// GenerateWeek generates puzzles for an entire week
func (dps *DailyProductionSchedule) GenerateWeek(ctx context.Context, startDate time.Time) (map[string]*BatchResult, error) {
	results := make(map[string]*BatchResult)

	days := []DayDifficulty{
		DayMonday, DayTuesday, DayWednesday,
		DayThursday, DayFriday, DaySaturday, DaySunday,
	}

	for i, day := range days {
		targetDate := startDate.AddDate(0, 0, i)
		dateStr := targetDate.Format("2006-01-02")

		log.Printf("Generating puzzle for %s (%s)...", dateStr, day)

		size := "daily"
		if day == DaySunday {
			size = "sunday"
		}

		req := &BatchGenerationRequest{
			Size:       size,
			Difficulty: day,
			TargetDate: &targetDate,
		}

		result, err := dps.pipeline.GenerateBatch(ctx, req)
		if err != nil {
			log.Printf("Failed to generate puzzle for %s: %v", dateStr, err)
			continue
		}

		results[dateStr] = result

		if result.BestPuzzle != nil {
			dps.mu.Lock()
			dps.archive[dateStr] = append(dps.archive[dateStr], result.BestPuzzle)
			dps.mu.Unlock()

			log.Printf("Generated %d candidates for %s (best score: %.1f)",
				len(result.Generated), dateStr, result.BestPuzzle.QualityReport.OverallScore)
		}
	}

	return results, nil
}

// GetBestPuzzleForDate returns the highest-scoring puzzle for a date
func (dps *DailyProductionSchedule) GetBestPuzzleForDate(date string) *GeneratedPuzzleResult {
	dps.mu.Lock()
	defer dps.mu.Unlock()

	puzzles, ok := dps.archive[date]
	if !ok || len(puzzles) == 0 {
		return nil
	}

	sort.Slice(puzzles, func(i, j int) bool {
		return puzzles[i].QualityReport.OverallScore > puzzles[j].QualityReport.OverallScore
	})

	return puzzles[0]
}

// ArchiveStats returns statistics about the puzzle archive
type ArchiveStats struct {
	TotalPuzzles     int     `json:"totalPuzzles"`
	AverageScore     float64 `json:"averageScore"`
	DatesWithPuzzles int     `json:"datesWithPuzzles"`
	HighestScore     float64 `json:"highestScore"`
	LowestScore      float64 `json:"lowestScore"`
}

func (dps *DailyProductionSchedule) GetArchiveStats() ArchiveStats {
	dps.mu.Lock()
	defer dps.mu.Unlock()

	stats := ArchiveStats{
		LowestScore: 100,
	}

	var totalScore float64

	for _, puzzles := range dps.archive {
		stats.DatesWithPuzzles++
		for _, p := range puzzles {
			stats.TotalPuzzles++
			score := p.QualityReport.OverallScore
			totalScore += score
			if score > stats.HighestScore {
				stats.HighestScore = score
			}
			if score < stats.LowestScore {
				stats.LowestScore = score
			}
		}
	}

	if stats.TotalPuzzles > 0 {
		stats.AverageScore = totalScore / float64(stats.TotalPuzzles)
	}

	return stats
}
