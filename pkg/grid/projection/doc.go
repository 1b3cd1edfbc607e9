// Package projection computes the grid area a dragged or resized item would
// occupy before it is committed.
//
// [FindProjectedFilledArea] is used the same way for hover previews during a
// drag and for live previews during a resize. It reports the candidate span
// as a [SelectedArea] and signals problems through data rather than errors:
// a span that does not fit in its row is not Filled, and a span overlapping
// occupied columns is in Conflict.
package projection
