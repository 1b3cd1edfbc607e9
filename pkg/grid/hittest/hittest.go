package hittest

import (
	"github.com/matzehuels/gridcanvas/pkg/grid"
)

// Point is a position in canvas pixels.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Box is an axis-aligned rectangle in canvas pixels.
type Box struct {
	Top    float64 `json:"top" msgpack:"top"`
	Left   float64 `json:"left" msgpack:"left"`
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
}

// Right returns the x coordinate of the box's right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the box's bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Coord addresses a column within a row.
type Coord struct {
	Row int `json:"row" msgpack:"row"`
	Col int `json:"col" msgpack:"col"`
}

// ColInfo is a grid coordinate together with the pixel box of that cell.
type ColInfo struct {
	Coord
	Box
}

// Side tells [FindStartCol] which edge of a box a probe represents.
type Side int

const (
	// SideNone treats the probe as a plain point.
	SideNone Side = iota
	// SideLeft marks a left edge. On an exact column boundary it belongs to
	// the column on its right.
	SideLeft
	// SideRight marks a right edge. On an exact column boundary it belongs to
	// the column on its left.
	SideRight
)

// Probe is a point tagged with the edge it stands for.
type Probe struct {
	Point
	Side Side
}

// IsInsideOfCol reports whether p lies inside the cell box, using half-open
// intervals: [Left, Left+Width) horizontally and [Top, Top+Height) vertically.
func IsInsideOfCol(p Point, col ColInfo) bool {
	return p.X >= col.Left && p.X < col.Right() &&
		p.Y >= col.Top && p.Y < col.Bottom()
}

// FindStartCol walks the columns of base.Row starting at base.Col, moving by
// step (+1 towards higher indices, -1 towards lower ones), and returns the
// first column whose horizontal span contains probe.X. base.Left must be the
// pixel left of the base column; its width is taken from the row.
//
// The walk never leaves the row: when probe.X lies beyond the last (or
// first) column in the walking direction, that column is returned. A probe
// behind the base column relative to step resolves to the base column.
//
// The second result reports whether the returned column is filled. A base
// row outside rows yields base's coordinate and false.
func FindStartCol(rows []grid.Row, probe Probe, base ColInfo, step int) (Coord, bool) {
	at := base.Coord
	if at.Row < 0 || at.Row >= len(rows) || len(rows[at.Row].Cols) == 0 {
		return at, false
	}
	cols := rows[at.Row].Cols
	at.Col = clamp(at.Col, 0, len(cols)-1)

	left := base.Left
	if step < 0 {
		for {
			c := cols[at.Col]
			if contains(left, c.Width, probe) || at.Col == 0 || probe.X >= left+c.Width {
				return at, c.Filled
			}
			at.Col--
			left -= cols[at.Col].Width
		}
	}
	for {
		c := cols[at.Col]
		if contains(left, c.Width, probe) || at.Col == len(cols)-1 || probe.X < left {
			return at, c.Filled
		}
		left += c.Width
		at.Col++
	}
}

func contains(left, width float64, p Probe) bool {
	right := left + width
	if p.Side == SideRight {
		return p.X > left+grid.Epsilon && p.X <= right+grid.Epsilon
	}
	return p.X >= left-grid.Epsilon && p.X < right-grid.Epsilon
}

// DistanceFromCol sums the widths of the columns between from and to in
// from's row. includeFrom and includeTo control whether the boundary columns
// count; when from and to are the same column it counts only if both are set.
// The order of from and to does not matter. Columns outside the row are
// ignored and an unknown row has distance 0.
func DistanceFromCol(rows []grid.Row, from, to Coord, includeFrom, includeTo bool) float64 {
	if from.Row < 0 || from.Row >= len(rows) {
		return 0
	}
	a, b := from.Col, to.Col
	if b < a {
		a, b = b, a
		includeFrom, includeTo = includeTo, includeFrom
	}
	if a == b && !(includeFrom && includeTo) {
		return 0
	}

	var d float64
	for i, c := range rows[from.Row].Cols {
		switch {
		case i < a || i > b:
		case i == a && !includeFrom:
		case i == b && !includeTo:
		default:
			d += c.Width
		}
	}
	return d
}

// RowTop returns the y offset of a row relative to the top of the grid.
func RowTop(rows []grid.Row, row int) float64 {
	var top float64
	for i := 0; i < row && i < len(rows); i++ {
		top += rows[i].Height
	}
	return top
}

// ColBox returns the pixel box of the cell at (row, col) for a grid whose
// top-left corner sits at origin.
func ColBox(rows []grid.Row, origin Point, row, col int) (ColInfo, bool) {
	if row < 0 || row >= len(rows) {
		return ColInfo{}, false
	}
	r := rows[row]
	if col < 0 || col >= len(r.Cols) {
		return ColInfo{}, false
	}
	return ColInfo{
		Coord: Coord{Row: row, Col: col},
		Box: Box{
			Top:    origin.Y + RowTop(rows, row),
			Left:   origin.X + r.ColLeft(col),
			Width:  r.Cols[col].Width,
			Height: r.Height,
		},
	}, true
}

// Locate returns the cell under p for a grid whose top-left corner sits at
// origin, or false when p is outside the grid.
func Locate(rows []grid.Row, origin Point, p Point) (ColInfo, bool) {
	top := origin.Y
	for _, r := range rows {
		if p.Y >= top && p.Y < top+r.Height {
			left := origin.X
			for _, c := range r.Cols {
				info := ColInfo{
					Coord: Coord{Row: r.Index, Col: c.Index},
					Box:   Box{Top: top, Left: left, Width: c.Width, Height: r.Height},
				}
				if IsInsideOfCol(p, info) {
					return info, true
				}
				left += c.Width
			}
			return ColInfo{}, false
		}
		top += r.Height
	}
	return ColInfo{}, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
