package grid

import (
	"errors"
	"time"
)

// Difficulty is a black-square density preset for generated grids.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// ErrGenerationFailed is returned when grid generation fails after max attempts.
var ErrGenerationFailed = errors.New("failed to generate valid grid after maximum attempts")

// MaxGenerationAttempts bounds the retry loop in Generate.
const MaxGenerationAttempts = 1000

// GeneratorConfig extends GridConfig with generation parameters.
type GeneratorConfig struct {
	GridConfig
	Difficulty   Difficulty
	BlackDensity float64 // overrides Difficulty's preset density when nonzero
	Seed         int64   // 0 picks a seed from the current time
}

// getDifficultyDensity maps a difficulty preset to a black-square density.
// These are conservative values: random placement creates short words more
// readily than constraint-based placement, so a lower density than a human
// editor would pick keeps HasShortWords retries rare.
func getDifficultyDensity(difficulty Difficulty) float64 {
	switch difficulty {
	case Easy:
		return 0.06
	case Medium:
		return 0.08
	case Hard:
		return 0.10
	case Expert:
		return 0.12
	default:
		return 0.08
	}
}

// Generate produces a valid empty grid: black squares seeded randomly,
// mirrored per the configured Symmetry, connected, and free of slots
// shorter than MinWordLength. It retries with a new seed up to
// MaxGenerationAttempts times before giving up with ErrGenerationFailed.
func Generate(config GeneratorConfig) (*Grid, error) {
	density := config.BlackDensity
	if density == 0 {
		density = getDifficultyDensity(config.Difficulty)
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	for attempt := 0; attempt < MaxGenerationAttempts; attempt++ {
		g := NewEmptyGrid(config.GridConfig)

		g.SeedBlackSquares(SeedConfig{
			Seed:         seed + int64(attempt),
			BlackDensity: density,
		})
		g.EnforceSymmetry()

		if !g.IsConnected() {
			continue
		}
		if g.HasShortWords() {
			continue
		}

		return g, nil
	}

	return nil, ErrGenerationFailed
}
