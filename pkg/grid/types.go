// Package grid implements the crossword board model: a matrix of cells with
// derived slot geometry, symmetry, and connectivity helpers. It is a pure
// data model — filling the grid with letters is pkg/fill's job.
package grid

import "github.com/nicklafarge/crosscosmo/pkg/lexicon"

// CellStatus is the life-cycle state of a single cell.
type CellStatus int

const (
	// EMPTY cells hold no letter and are freely mutable by the solver.
	EMPTY CellStatus = iota
	// SET cells hold a solver- or editor-placed letter; still mutable.
	SET
	// LOCKED cells hold an editor-pinned letter the solver must not change.
	LOCKED
	// BLACK cells are blocked squares; immovable by the solver.
	BLACK
)

func (s CellStatus) String() string {
	switch s {
	case EMPTY:
		return "empty"
	case SET:
		return "set"
	case LOCKED:
		return "locked"
	case BLACK:
		return "black"
	default:
		return "unknown"
	}
}

// Direction represents the direction of a crossword entry.
type Direction int

const (
	// ACROSS represents a horizontal word entry.
	ACROSS Direction = iota
	// DOWN represents a vertical word entry.
	DOWN
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case ACROSS:
		return "across"
	case DOWN:
		return "down"
	default:
		return "unknown"
	}
}

// Cross returns the orientation perpendicular to d.
func (d Direction) Cross() Direction {
	if d == ACROSS {
		return DOWN
	}
	return ACROSS
}

// Symmetry describes the relationship the editor wants enforced between a
// cell's black/non-black status and that of its mirrored counterpart.
type Symmetry int

const (
	// SymmetryNone enforces no relationship between cells.
	SymmetryNone Symmetry = iota
	// SymmetryRotational enforces 180-degree rotational symmetry.
	SymmetryRotational
	// SymmetryReflection enforces left-right mirror symmetry.
	SymmetryReflection
)

// RemovedWord records a word the solver pulled out of the lexicon's trie
// because placing a candidate letter completed it, so it won't be offered
// again as a candidate for a different slot. It is restored to the trie
// when the cell that caused its removal is cleared by a backtrack.
type RemovedWord struct {
	Word   string
	Dir    Direction
	Length int
}

// Cell is a single square of the board.
type Cell struct {
	Row, Col int
	Status   CellStatus
	Letter   rune // 'A'-'Z' when Status is SET or LOCKED, 0 otherwise

	// Derived geometry, recomputed by Grid.recomputeGeometry after any
	// structural edit.
	IsHStart, IsHEnd bool
	IsVStart, IsVEnd bool
	HLen, VLen       int
	AnswerNumber     int // 0 means "no answer number" (null)

	// Solver-only bookkeeping. Left zero-valued outside of an active solve;
	// pkg/fill owns reading and mutating these.
	Queue        []rune
	Excluded     []rune
	RemovedWords []RemovedWord
}

// Valid reports whether the cell satisfies the grid's well-formedness rule:
// a cell is valid iff it is BLACK, or both its horizontal and vertical run
// lengths are at least MinWordLength.
func (c *Cell) Valid() bool {
	if c.Status == BLACK {
		return true
	}
	return c.HLen >= MinWordLength && c.VLen >= MinWordLength
}

// Entry is a slot of length >= MinWordLength that must spell a lexicon word
// (the spec's "answer"). It is one materialization of a CellList.
type Entry struct {
	Number    int
	Direction Direction
	StartRow  int
	StartCol  int
	Length    int
	Cells     []*Cell
}

// CellList is the general slot abstraction: an ordered run of cells in one
// orientation, of any length >= 1, as returned by Grid.Slot and consumed by
// the solver and look-ahead evaluator.
type CellList struct {
	Cells     []*Cell
	Direction Direction
}

// String renders the slot with unfilled cells shown as '-'.
func (cl *CellList) String() string {
	buf := make([]byte, len(cl.Cells))
	for i, c := range cl.Cells {
		if c.Letter == 0 {
			buf[i] = '-'
		} else {
			buf[i] = byte(c.Letter)
		}
	}
	return string(buf)
}

// GridConfig configures a freshly created Grid.
type GridConfig struct {
	Size int // square grids; set Rows/Cols directly via NewGrid for rectangular boards

	Rows, Cols   int
	Symmetry     Symmetry
	AutoSymmetry bool
	Lexicon      *lexicon.Lexicon
}

// Grid is a rows x cols matrix of cells plus the symmetry configuration and
// lexicon reference the solver and editor share.
type Grid struct {
	Rows, Cols   int
	Cells        [][]*Cell // indexed [row][col]
	Entries      []*Entry
	Symmetry     Symmetry
	AutoSymmetry bool
	Lexicon      *lexicon.Lexicon
}

// NewEmptyGrid creates a Grid of the configured size with every cell EMPTY,
// then derives geometry for the (all-white) starting pattern. Config.Size is
// kept for square-grid callers inherited from the teacher codebase; it is
// equivalent to setting both Rows and Cols.
func NewEmptyGrid(config GridConfig) *Grid {
	rows, cols := config.Rows, config.Cols
	if config.Size != 0 {
		rows, cols = config.Size, config.Size
	}
	g := &Grid{
		Rows:         rows,
		Cols:         cols,
		Symmetry:     config.Symmetry,
		AutoSymmetry: config.AutoSymmetry,
		Lexicon:      config.Lexicon,
	}
	g.Cells = make([][]*Cell, g.Rows)
	for row := 0; row < g.Rows; row++ {
		g.Cells[row] = make([]*Cell, g.Cols)
		for col := 0; col < g.Cols; col++ {
			g.Cells[row][col] = &Cell{Row: row, Col: col, Status: EMPTY}
		}
	}
	g.RecomputeGeometry()
	return g
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns the cell at (row, col), or nil if out of bounds.
func (g *Grid) At(row, col int) *Cell {
	if !g.InBounds(row, col) {
		return nil
	}
	return g.Cells[row][col]
}
