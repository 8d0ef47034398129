package grid

import "encoding/json"

// cellDoc is the wire representation of a single cell, mirroring the field
// names of the grid serialization document.
type cellDoc struct {
	Status       int    `json:"status"`
	Value        string `json:"value"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	IsHStart     bool   `json:"is_h_start"`
	IsHEnd       bool   `json:"is_h_end"`
	IsVStart     bool   `json:"is_v_start"`
	IsVEnd       bool   `json:"is_v_end"`
	HLen         int    `json:"hlen"`
	VLen         int    `json:"vlen"`
	AnswerNumber *int   `json:"answer_number"`
}

// gridDoc is the wire representation of a Grid. Geometry fields on each
// cell are advisory: MarshalJSON writes the Grid's current derived
// geometry, and UnmarshalJSON re-derives it from the black-square pattern
// rather than trusting what was stored.
type gridDoc struct {
	GridSize     [2]int    `json:"grid_size"`
	Symmetry     int       `json:"symmetry"`
	AutoSymmetry bool      `json:"auto_symmetry"`
	GridLetters  [][]cellDoc `json:"grid_letters"`
}

// MarshalJSON encodes the grid as the standard document: grid_size,
// symmetry, auto_symmetry, and a rows x cols grid_letters array.
func (g *Grid) MarshalJSON() ([]byte, error) {
	doc := gridDoc{
		GridSize:     [2]int{g.Rows, g.Cols},
		Symmetry:     int(g.Symmetry),
		AutoSymmetry: g.AutoSymmetry,
		GridLetters:  make([][]cellDoc, g.Rows),
	}

	for row := 0; row < g.Rows; row++ {
		doc.GridLetters[row] = make([]cellDoc, g.Cols)
		for col := 0; col < g.Cols; col++ {
			c := g.Cells[row][col]
			value := ""
			if c.Letter != 0 {
				value = string(c.Letter)
			}
			var answerNumber *int
			if c.AnswerNumber != 0 {
				n := c.AnswerNumber
				answerNumber = &n
			}
			doc.GridLetters[row][col] = cellDoc{
				Status:       int(c.Status),
				Value:        value,
				X:            col,
				Y:            row,
				IsHStart:     c.IsHStart,
				IsHEnd:       c.IsHEnd,
				IsVStart:     c.IsVStart,
				IsVEnd:       c.IsVEnd,
				HLen:         c.HLen,
				VLen:         c.VLen,
				AnswerNumber: answerNumber,
			}
		}
	}

	return json.Marshal(doc)
}

// UnmarshalJSON decodes the standard grid document. Only status, value,
// and the grid's dimensions/symmetry settings are trusted; every geometry
// field (is_h_start, hlen, answer_number, ...) is discarded and
// re-derived by RecomputeGeometry, since the document marks those fields
// advisory.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var doc gridDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	g.Rows, g.Cols = doc.GridSize[0], doc.GridSize[1]
	g.Symmetry = Symmetry(doc.Symmetry)
	g.AutoSymmetry = doc.AutoSymmetry

	g.Cells = make([][]*Cell, g.Rows)
	for row := 0; row < g.Rows; row++ {
		g.Cells[row] = make([]*Cell, g.Cols)
		for col := 0; col < g.Cols; col++ {
			var cd cellDoc
			if row < len(doc.GridLetters) && col < len(doc.GridLetters[row]) {
				cd = doc.GridLetters[row][col]
			}
			cell := &Cell{Row: row, Col: col, Status: CellStatus(cd.Status)}
			if len(cd.Value) == 1 {
				cell.Letter = rune(cd.Value[0])
			}
			g.Cells[row][col] = cell
		}
	}

	g.RecomputeGeometry()
	return nil
}
