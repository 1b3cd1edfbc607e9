package grid

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the tolerance used when comparing pixel widths and heights.
// Column widths are produced by dividing the base width, so exact float
// equality cannot be relied on.
const Epsilon = 1e-6

var (
	// ErrRowIndex is returned by [Validate] when row indices are not the
	// contiguous sequence 0..n-1.
	ErrRowIndex = errors.New("row indices must be contiguous from 0")

	// ErrColIndex is returned by [Validate] when the column indices of a row
	// are not the contiguous sequence 0..n-1.
	ErrColIndex = errors.New("column indices must be contiguous from 0")

	// ErrNoCols is returned by [Validate] for a row without columns.
	ErrNoCols = errors.New("row has no columns")

	// ErrWidthMismatch is returned by [Validate] when the column widths of a
	// row do not add up to the total width.
	ErrWidthMismatch = errors.New("column widths do not sum to total width")

	// ErrPlaceholder is returned by [Validate] when a placeholder row is not
	// the last row, or more than one row is marked as placeholder.
	ErrPlaceholder = errors.New("only the last row may be a placeholder")
)

// Col is a single column (cell) of a row.
type Col struct {
	Index  int     `json:"index" msgpack:"index"`
	Width  float64 `json:"width" msgpack:"width"`
	Filled bool    `json:"filled" msgpack:"filled"`
}

// Row is a horizontal band of the grid. Its columns are laid out left to
// right and always span the full grid width.
type Row struct {
	Index       int     `json:"index" msgpack:"index"`
	Height      float64 `json:"height" msgpack:"height"`
	Placeholder bool    `json:"placeholder" msgpack:"placeholder"`
	Cols        []Col   `json:"cols" msgpack:"cols"`
}

// Width returns the sum of the row's column widths.
func (r Row) Width() float64 {
	var w float64
	for _, c := range r.Cols {
		w += c.Width
	}
	return w
}

// IsEmpty reports whether no column of the row is filled.
func (r Row) IsEmpty() bool {
	for _, c := range r.Cols {
		if c.Filled {
			return false
		}
	}
	return true
}

// ColLeft returns the pixel offset of column col from the row's left edge.
// Out of range indices are clamped to the row bounds.
func (r Row) ColLeft(col int) float64 {
	var left float64
	for i := 0; i < col && i < len(r.Cols); i++ {
		left += r.Cols[i].Width
	}
	return left
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := r
	out.Cols = make([]Col, len(r.Cols))
	copy(out.Cols, r.Cols)
	return out
}

// Clone returns a deep copy of rows. Mutation functions in this package
// never modify their input, so callers only need Clone to take a snapshot
// they intend to modify themselves.
func Clone(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// TotalHeight returns the combined height of all rows.
func TotalHeight(rows []Row) float64 {
	var h float64
	for _, r := range rows {
		h += r.Height
	}
	return h
}

// GenerateRows builds a uniform grid of numberOfRows rows, each holding
// numberOfCols unfilled columns of equal width summing to baseWidth.
//
// No row is marked as placeholder; use [MarkPlaceholder] on the result when
// the grid is used as a design canvas. Non-positive counts produce an empty
// grid or rows without columns respectively.
func GenerateRows(baseWidth float64, numberOfRows, numberOfCols int, rowHeight float64) []Row {
	if numberOfRows <= 0 {
		return []Row{}
	}
	rows := make([]Row, numberOfRows)
	for i := range rows {
		rows[i] = Row{
			Index:  i,
			Height: rowHeight,
			Cols:   uniformCols(numberOfCols, baseWidth),
		}
	}
	return rows
}

// MarkPlaceholder marks the last row as the trailing placeholder row and
// clears the flag on every other row. It modifies rows in place.
func MarkPlaceholder(rows []Row) {
	for i := range rows {
		rows[i].Placeholder = i == len(rows)-1
	}
}

// uniformCols returns n unfilled columns of equal width. The last column
// absorbs the floating point remainder so the widths sum to total exactly.
func uniformCols(n int, total float64) []Col {
	if n <= 0 {
		return []Col{}
	}
	cols := make([]Col, n)
	unit := total / float64(n)
	var used float64
	for i := range cols {
		w := unit
		if i == n-1 {
			w = total - used
		}
		cols[i] = Col{Index: i, Width: w}
		used += w
	}
	return cols
}

// Exclude selects a boundary of the range checked by [AreColsEmpty] that
// should be left out of the check.
type Exclude int

const (
	// ExcludeNone checks every column of the range.
	ExcludeNone Exclude = iota
	// ExcludeFrom skips the fromCol boundary.
	ExcludeFrom
	// ExcludeTo skips the toCol boundary.
	ExcludeTo
)

// AreColsEmpty reports whether every column between fromCol and toCol
// (inclusive, in either order) is unfilled, optionally skipping one of the
// two boundaries. Columns outside the row are ignored, so a range that lies
// completely outside the row is trivially empty.
func AreColsEmpty(row Row, fromCol, toCol int, exclude Exclude) bool {
	step := 1
	if toCol < fromCol {
		step = -1
	}
	for col := fromCol; ; col += step {
		skip := (exclude == ExcludeFrom && col == fromCol) || (exclude == ExcludeTo && col == toCol)
		if !skip && col >= 0 && col < len(row.Cols) && row.Cols[col].Filled {
			return false
		}
		if col == toCol {
			return true
		}
	}
}

// sameLayout reports whether two rows have the same column widths.
func sameLayout(a, b Row) bool {
	if len(a.Cols) != len(b.Cols) {
		return false
	}
	for i := range a.Cols {
		if math.Abs(a.Cols[i].Width-b.Cols[i].Width) > Epsilon {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants of a grid: contiguous row and
// column indices, column widths summing to totalWidth, and at most one
// placeholder row which must be the last one.
func Validate(rows []Row, totalWidth float64) error {
	tolerance := Epsilon * math.Max(1, totalWidth)
	for i, r := range rows {
		if r.Index != i {
			return fmt.Errorf("row at position %d has index %d: %w", i, r.Index, ErrRowIndex)
		}
		if len(r.Cols) == 0 {
			return fmt.Errorf("row %d: %w", i, ErrNoCols)
		}
		for j, c := range r.Cols {
			if c.Index != j {
				return fmt.Errorf("row %d: column at position %d has index %d: %w", i, j, c.Index, ErrColIndex)
			}
		}
		if w := r.Width(); math.Abs(w-totalWidth) > tolerance {
			return fmt.Errorf("row %d: width %v, want %v: %w", i, w, totalWidth, ErrWidthMismatch)
		}
		if r.Placeholder && i != len(rows)-1 {
			return fmt.Errorf("row %d: %w", i, ErrPlaceholder)
		}
	}
	return nil
}
