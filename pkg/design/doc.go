// Package design holds the components placed on a grid and the indices that
// connect them to rows.
//
// Placed components are wrapped in an [Item] that records the column span
// it covers. All items of one row form a [Group]. Two indices make lookups
// during interaction O(1):
//
//   - [RowsToGroups] maps a row index to the group hosting that row,
//   - [ComponentsInfo] maps a component id to the row hosting it.
//
// Both are derived data. When grid.UpdateRows renumbers rows, a [Reindexer]
// collects the moves through the OnRowIndexChange callback and repairs both
// maps in the same mutation.
//
// Every function in this package is copy-on-write: inputs are never
// modified and callers replace their state with the returned values.
package design
