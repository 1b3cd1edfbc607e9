// Package term renders a design session for the terminal.
//
// [Canvas] draws the grid as a block of characters. Every row becomes one or
// more lines (one per [Options.PxPerLine] pixels of height) and every column
// a run of characters proportional to its width:
//
//	0 │hhhhhhhhhhhhhhhh································
//	1 │░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
//
// Filled cells show the first letter of the component type occupying them,
// upper-cased for the selected component. Empty cells are dots and the
// placeholder row is shaded. The area previewed by a drag or resize is
// drawn over the grid with '+' when it can be dropped and 'x' when it
// conflicts.
//
// [Components] and [Rows] render the design indices as tables.
package term
