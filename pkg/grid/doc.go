// Package grid models the row/column structure behind a design canvas.
//
// # Overview
//
// A grid is an ordered slice of [Row] values. Every row spans the full
// canvas width and is divided into [Col] cells whose widths add up to that
// width. Rows may have different heights and different column layouts: a
// freshly generated grid is uniform, but rows are split, grown and merged as
// components are dropped and resized.
//
// The last row is normally a placeholder: an empty row kept available for
// new drops. Occupying it turns it into a regular row and appends a new
// placeholder.
//
// # Mutation
//
// All mutation goes through [UpdateRows], which works copy-on-write: the
// input slice is never modified, so discarding a [Result] is a complete
// rollback. UpdateRows reports row renumbering through a callback so that
// indices kept outside the grid (row to group maps, component back
// references) can be repaired in the same step:
//
//	res, ok := grid.UpdateRows(rows, grid.Update{
//	    Current: grid.Span{Row: 0, StartCol: 0, EndCol: 3, Height: 80},
//	    DefaultRowHeight:    100,
//	    DefaultNumberOfCols: 12,
//	    TotalWidth:          1200,
//	    OnRowIndexChange: func(old grid.Row, newIndex int) {
//	        // move anything keyed by old.Index to newIndex
//	    },
//	})
//
// # Invariants
//
//   - Row indices are contiguous from 0 after every update.
//   - Column indices in a row are contiguous from 0.
//   - Column widths in a row sum to the total width (within [Epsilon]).
//   - At most one row is a placeholder, and it is the last row.
//
// [Validate] checks all of them.
package grid
