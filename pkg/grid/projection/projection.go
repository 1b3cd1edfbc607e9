package projection

import (
	"github.com/matzehuels/gridcanvas/pkg/grid"
	"github.com/matzehuels/gridcanvas/pkg/grid/hittest"
)

// SelectedArea is the candidate placement of an item: the columns it would
// cover in one row and the pixel box of that span.
//
// Filled and Conflict are independent. Filled is true when the whole
// requested span fits in the row. Conflict is true when any covered column
// is already occupied. A placement may only be committed when it is filled
// and free of conflicts, see [SelectedArea.Droppable].
type SelectedArea struct {
	Row      int         `json:"row" msgpack:"row"`
	StartCol int         `json:"startCol" msgpack:"startCol"`
	EndCol   int         `json:"endCol" msgpack:"endCol"`
	AreaBox  hittest.Box `json:"areaBox" msgpack:"areaBox"`
	Filled   bool        `json:"filled" msgpack:"filled"`
	Conflict bool        `json:"conflict" msgpack:"conflict"`
}

// Droppable reports whether the area can be committed.
func (a SelectedArea) Droppable() bool {
	return a.Filled && !a.Conflict
}

// Cols returns the number of columns covered by the area.
func (a SelectedArea) Cols() int {
	return a.EndCol - a.StartCol + 1
}

// Span converts the area into the span occupied by [grid.UpdateRows].
func (a SelectedArea) Span(height float64) grid.Span {
	return grid.Span{Row: a.Row, StartCol: a.StartCol, EndCol: a.EndCol, Height: height}
}

// FindProjectedFilledArea computes the area an item consuming consumedRows
// rows and consumedCols columns would occupy when its first column is
// placed on base. The span grows from base.Col towards higher column indices
// and is clamped to the row; a clamped span is not Filled.
//
// Only the base row is checked for conflicts. consumedRows extends the
// height of AreaBox over the following rows (clamped to the grid). Counts
// below one are treated as one.
//
// The function is pure: identical inputs always yield identical areas.
func FindProjectedFilledArea(rows []grid.Row, base hittest.ColInfo, consumedRows, consumedCols int) SelectedArea {
	area := SelectedArea{
		Row:      base.Row,
		StartCol: base.Col,
		EndCol:   base.Col,
		AreaBox:  hittest.Box{Top: base.Top, Left: base.Left},
	}
	if base.Row < 0 || base.Row >= len(rows) {
		return area
	}
	row := rows[base.Row]
	last := len(row.Cols) - 1
	if base.Col < 0 || base.Col > last {
		return area
	}

	consumedRows = max(consumedRows, 1)
	consumedCols = max(consumedCols, 1)

	area.EndCol = base.Col + consumedCols - 1
	area.Filled = true
	if area.EndCol > last {
		area.EndCol = last
		area.Filled = false
	}
	area.Conflict = !grid.AreColsEmpty(row, area.StartCol, area.EndCol, grid.ExcludeNone)

	area.AreaBox.Width = hittest.DistanceFromCol(rows,
		hittest.Coord{Row: base.Row, Col: area.StartCol},
		hittest.Coord{Row: base.Row, Col: area.EndCol},
		true, true)
	for i := base.Row; i < base.Row+consumedRows && i < len(rows); i++ {
		area.AreaBox.Height += rows[i].Height
	}
	return area
}
