package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicklafarge/crosscosmo/pkg/grid"
	"github.com/spf13/cobra"
)

// clueData represents a clue in the JSON file
type clueData struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Answer string `json:"answer"`
	Length int    `json:"length"`
}

var (
	validateInput string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate crossword puzzle files",
	Long: `Validate one or more crossword puzzle files for correctness.

Checks include:
  - Grid symmetry (180-degree rotational)
  - Grid connectivity (all white cells reachable)
  - Minimum word length requirements
  - Clue completeness
  - Format correctness

Examples:
  # Validate a single puzzle file
  crossgen validate --input puzzle.json

  # Validate all puzzles in a directory
  crossgen validate --input ./puzzles`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "input file or directory to validate (required)")
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if verbosity > 0 {
		fmt.Printf("Validating: %s\n", validateInput)
	}

	// Get file info to check if it's a file or directory
	info, err := os.Stat(validateInput)
	if err != nil {
		return fmt.Errorf("failed to access input path: %w", err)
	}

	var filesToValidate []string

	if info.IsDir() {
		// Find all .json files in the directory
		files, err := filepath.Glob(filepath.Join(validateInput, "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no .json files found in directory: %s", validateInput)
		}
		filesToValidate = files
	} else {
		// Single file
		filesToValidate = []string{validateInput}
	}

	// Validate each file
	totalFiles := len(filesToValidate)
	invalidFiles := 0
	validFiles := 0

	for _, filePath := range filesToValidate {
		if verbosity > 0 {
			fmt.Printf("\nValidating: %s\n", filePath)
		}

		valid, err := validatePuzzleFile(filePath)
		if err != nil {
			fmt.Printf("❌ %s: ERROR - %v\n", filepath.Base(filePath), err)
			invalidFiles++
		} else if !valid {
			invalidFiles++
		} else {
			if verbosity > 0 {
				fmt.Printf("✓ %s: VALID\n", filepath.Base(filePath))
			}
			validFiles++
		}
	}

	// Print summary
	fmt.Printf("\n")
	fmt.Printf("Validation Summary:\n")
	fmt.Printf("  Total files:   %d\n", totalFiles)
	fmt.Printf("  Valid:         %d\n", validFiles)
	fmt.Printf("  Invalid:       %d\n", invalidFiles)

	// Exit with code 1 if any file is invalid
	if invalidFiles > 0 {
		os.Exit(1)
	}

	return nil
}

// validatePuzzleFile validates a single puzzle file
// Returns true if valid, false if invalid, and an error if the file can't be processed
func validatePuzzleFile(filePath string) (bool, error) {
	// Read the file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}

	// Parse JSON
	var puzzleData struct {
		Grid   [][]string `json:"grid"`
		Across []clueData `json:"across"`
		Down   []clueData `json:"down"`
	}

	if err := json.Unmarshal(data, &puzzleData); err != nil {
		return false, fmt.Errorf("invalid JSON format: %w", err)
	}

	// Check that grid exists
	if len(puzzleData.Grid) == 0 {
		fmt.Printf("❌ %s: INVALID - empty grid\n", filepath.Base(filePath))
		return false, nil
	}

	// Convert to grid.Grid for validation
	g := convertToGrid(puzzleData.Grid)

	// Perform validation checks
	errors := []string{}

	// 1. Check grid symmetry
	if !g.IsSymmetric() {
		errors = append(errors, "grid lacks the configured symmetry")
	}

	// 2. Check grid connectivity
	if !g.IsConnected() {
		errors = append(errors, "grid has disconnected white cells")
	}

	// 3. Check word lengths
	if g.HasShortWords() {
		errors = append(errors, fmt.Sprintf("grid contains words shorter than minimum length (%d)", grid.MinWordLength))
	}

	// 4. Check clue completeness
	clueErrors := validateClueCompleteness(g, puzzleData.Across, puzzleData.Down)
	errors = append(errors, clueErrors...)

	// Report errors
	if len(errors) > 0 {
		fmt.Printf("❌ %s: INVALID\n", filepath.Base(filePath))
		for _, errMsg := range errors {
			fmt.Printf("   - %s\n", errMsg)
		}
		return false, nil
	}

	return true, nil
}

// convertToGrid converts a 2D string array to a grid.Grid with 180-degree
// rotational symmetry, deriving all geometry (entry numbers, run lengths)
// through RecomputeGeometry rather than recomputing it by hand here.
func convertToGrid(gridData [][]string) *grid.Grid {
	size := len(gridData)
	g := grid.NewEmptyGrid(grid.GridConfig{Size: size, Symmetry: grid.SymmetryRotational})

	for row := 0; row < size; row++ {
		for col := 0; col < size && col < len(gridData[row]); col++ {
			cell := gridData[row][col]
			if cell == "." || cell == "" {
				_ = g.Set(row, col, grid.BlackSentinel)
			} else {
				_ = g.Set(row, col, strings.ToUpper(cell[:1]))
			}
		}
	}

	return g
}

// validateClueCompleteness checks that all entries have corresponding clues
func validateClueCompleteness(g *grid.Grid, acrossClues, downClues []clueData) []string {
	errors := []string{}

	// Build maps of expected entries from the grid, derived from g.Entries
	// rather than re-deriving run boundaries by hand.
	expectedAcross := make(map[int]int) // clue number -> length
	expectedDown := make(map[int]int)

	for _, e := range g.Entries {
		switch e.Direction {
		case grid.ACROSS:
			expectedAcross[e.Number] = e.Length
		case grid.DOWN:
			expectedDown[e.Number] = e.Length
		}
	}

	// Check that all expected across entries have clues
	providedAcross := make(map[int]bool)
	for _, clue := range acrossClues {
		providedAcross[clue.Number] = true

		// Check clue has text
		if strings.TrimSpace(clue.Text) == "" {
			errors = append(errors, fmt.Sprintf("across clue %d has empty text", clue.Number))
		}

		// Check clue has answer
		if strings.TrimSpace(clue.Answer) == "" {
			errors = append(errors, fmt.Sprintf("across clue %d has empty answer", clue.Number))
		}

		// Check answer length matches expected
		if expectedLen, exists := expectedAcross[clue.Number]; exists {
			if clue.Length != expectedLen {
				errors = append(errors, fmt.Sprintf("across clue %d: answer length mismatch (expected %d, got %d)", clue.Number, expectedLen, clue.Length))
			}
		} else {
			errors = append(errors, fmt.Sprintf("across clue %d has no corresponding entry in grid", clue.Number))
		}
	}

	for clueNum := range expectedAcross {
		if !providedAcross[clueNum] {
			errors = append(errors, fmt.Sprintf("missing across clue for entry %d", clueNum))
		}
	}

	// Check that all expected down entries have clues
	providedDown := make(map[int]bool)
	for _, clue := range downClues {
		providedDown[clue.Number] = true

		// Check clue has text
		if strings.TrimSpace(clue.Text) == "" {
			errors = append(errors, fmt.Sprintf("down clue %d has empty text", clue.Number))
		}

		// Check clue has answer
		if strings.TrimSpace(clue.Answer) == "" {
			errors = append(errors, fmt.Sprintf("down clue %d has empty answer", clue.Number))
		}

		// Check answer length matches expected
		if expectedLen, exists := expectedDown[clue.Number]; exists {
			if clue.Length != expectedLen {
				errors = append(errors, fmt.Sprintf("down clue %d: answer length mismatch (expected %d, got %d)", clue.Number, expectedLen, clue.Length))
			}
		} else {
			errors = append(errors, fmt.Sprintf("down clue %d has no corresponding entry in grid", clue.Number))
		}
	}

	for clueNum := range expectedDown {
		if !providedDown[clueNum] {
			errors = append(errors, fmt.Sprintf("missing down clue for entry %d", clueNum))
		}
	}

	return errors
}
