package puzzle

import (
	"context"
	"fmt"

	"github.com/nicklafarge/crosscosmo/internal/models"
	"github.com/nicklafarge/crosscosmo/pkg/fill"
	"github.com/nicklafarge/crosscosmo/pkg/grid"
	"github.com/nicklafarge/crosscosmo/pkg/lexicon"
)

// CellFill is one solved cell, returned in row-major solve order so a
// caller can replay the fill (e.g. broadcast it cell by cell over a
// WebSocket) without re-deriving positions from the grid itself.
type CellFill struct {
	Row, Col int
	Letter   string
}

// BuildPatternGrid builds a grid.Grid carrying only puz's black/non-black
// pattern — every non-black cell is left EMPTY regardless of what letter
// puz.Grid already holds. lex may be nil for callers that only need
// pattern-derived geometry (symmetry, connectivity, crossing) and never
// call fill.Solve on the result.
func BuildPatternGrid(puz *models.Puzzle, lex *lexicon.Lexicon) (*grid.Grid, error) {
	if puz == nil || puz.GridHeight == 0 || puz.GridWidth == 0 {
		return nil, fmt.Errorf("puzzle: BuildPatternGrid requires a non-empty puzzle grid")
	}

	g := grid.NewEmptyGrid(grid.GridConfig{
		Rows:    puz.GridHeight,
		Cols:    puz.GridWidth,
		Lexicon: lex,
	})

	for row := 0; row < puz.GridHeight; row++ {
		for col := 0; col < puz.GridWidth; col++ {
			if puz.Grid[row][col].Letter == nil {
				if err := g.Set(row, col, grid.BlackSentinel); err != nil {
					return nil, fmt.Errorf("puzzle: blackening (%d, %d): %w", row, col, err)
				}
			}
		}
	}

	return g, nil
}

// SolveGrid runs pkg/fill.Solve over puz's black-square pattern and returns
// the solved letters in row-major order. It ignores any letters already
// present in puz.Grid — only the black/non-black pattern is read — so it
// can be used to find a fill for a hand-edited grid, not just to re-derive
// one a generator already produced. puz itself is never mutated.
func SolveGrid(ctx context.Context, lex *lexicon.Lexicon, puz *models.Puzzle) ([]CellFill, error) {
	if lex == nil {
		return nil, fmt.Errorf("puzzle: SolveGrid requires a lexicon")
	}
	if puz == nil || puz.GridHeight == 0 || puz.GridWidth == 0 {
		return nil, fmt.Errorf("puzzle: SolveGrid requires a non-empty puzzle grid")
	}

	g, err := BuildPatternGrid(puz, lex)
	if err != nil {
		return nil, err
	}

	if err := fill.Solve(ctx, g, fill.Config{}); err != nil {
		return nil, err
	}

	fills := make([]CellFill, 0, puz.GridHeight*puz.GridWidth)
	for row := 0; row < puz.GridHeight; row++ {
		for col := 0; col < puz.GridWidth; col++ {
			cell := g.Cells[row][col]
			if cell.Status == grid.BLACK {
				continue
			}
			fills = append(fills, CellFill{Row: row, Col: col, Letter: string(cell.Letter)})
		}
	}
	return fills, nil
}
