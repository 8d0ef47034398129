package puzzle

import (
	"time"

	"github.com/nicklafarge/crosscosmo/internal/models"
	"github.com/google/uuid"
)

// SamplePuzzle returns a small hand-built puzzle used to seed an empty
// database or serve a demo response when no generated puzzles exist yet.
func SamplePuzzle() *models.Puzzle {
	grid := [][]models.GridCell{
		{sampleCell("H"), sampleCell("E"), sampleCell("L"), sampleCell("L"), sampleCell("O")},
		{sampleCell("A"), sampleBlack(), sampleBlack(), sampleCell("A"), sampleCell("N")},
		{sampleCell("T"), sampleCell("O"), sampleCell("P"), sampleCell("S"), sampleCell("E")},
		{sampleCell("E"), sampleCell("N"), sampleBlack(), sampleBlack(), sampleCell("W")},
		{sampleCell("S"), sampleCell("E"), sampleCell("W"), sampleCell("E"), sampleCell("D")},
	}

	one, two, three, four, five, six, seven := 1, 2, 3, 4, 5, 6, 7
	grid[0][0].Number = &one
	grid[0][3].Number = &two
	grid[1][0].Number = &three
	grid[2][0].Number = &four
	grid[2][1].Number = &five
	grid[3][0].Number = &six
	grid[4][0].Number = &seven

	cluesAcross := []models.Clue{
		{Number: 1, Text: "Greeting", Answer: "HELLO", PositionX: 0, PositionY: 0, Length: 5, Direction: "across"},
		{Number: 4, Text: "Spinning toys", Answer: "TOPS", PositionX: 0, PositionY: 2, Length: 4, Direction: "across"},
		{Number: 7, Text: "Stitched", Answer: "SEWED", PositionX: 0, PositionY: 4, Length: 5, Direction: "across"},
	}

	cluesDown := []models.Clue{
		{Number: 1, Text: "Dislikes strongly", Answer: "HATES", PositionX: 0, PositionY: 0, Length: 5, Direction: "down"},
		{Number: 2, Text: "Lane anagram", Answer: "LANE", PositionX: 3, PositionY: 0, Length: 4, Direction: "down"},
		{Number: 3, Text: "A single time", Answer: "ONCE", PositionX: 4, PositionY: 0, Length: 4, Direction: "down"},
		{Number: 5, Text: "Antique", Answer: "OLDEN", PositionX: 1, PositionY: 2, Length: 3, Direction: "down"},
	}

	now := time.Now()
	today := now.Format("2006-01-02")
	theme := "Greetings"

	return &models.Puzzle{
		ID:          uuid.New().String(),
		Date:        &today,
		Title:       "Hello World",
		Author:      "CrossPlay Team",
		Difficulty:  models.DifficultyEasy,
		GridWidth:   5,
		GridHeight:  5,
		Grid:        grid,
		CluesAcross: cluesAcross,
		CluesDown:   cluesDown,
		Theme:       &theme,
		Status:      "published",
		CreatedAt:   now,
		PublishedAt: &now,
	}
}

func sampleCell(letter string) models.GridCell {
	return models.GridCell{Letter: &letter}
}

func sampleBlack() models.GridCell {
	return models.GridCell{Letter: nil}
}
