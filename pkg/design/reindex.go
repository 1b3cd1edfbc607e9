package design

import "github.com/matzehuels/gridcanvas/pkg/grid"

type rowMove struct {
	old, new int
}

// Reindexer collects row renumbering reported by grid.UpdateRows and
// applies it to both indices in one step.
//
//	var rx design.Reindexer
//	res, ok := grid.UpdateRows(rows, grid.Update{..., OnRowIndexChange: rx.OnRowIndexChange})
//	rowsToGroups, info := rx.Apply(rowsToGroups, info, groups)
type Reindexer struct {
	moves []rowMove
}

// OnRowIndexChange records that the row previously at old.Index now lives
// at newIndex.
func (r *Reindexer) OnRowIndexChange(old grid.Row, newIndex int) {
	r.moves = append(r.moves, rowMove{old: old.Index, new: newIndex})
}

// Moved reports whether any row changed index.
func (r *Reindexer) Moved() bool {
	return len(r.moves) > 0
}

// Apply returns copies of rowsToGroups and info with every recorded move
// applied. Stale keys are removed before new keys are written so rows
// swapping places cannot clobber each other. Only components of groups on
// moved rows are touched.
func (r *Reindexer) Apply(rowsToGroups RowsToGroups, info ComponentsInfo, groups []Group) (RowsToGroups, ComponentsInfo) {
	outRows := rowsToGroups.Clone()
	outInfo := info.Clone()

	type moved struct {
		group, row int
	}
	var pending []moved
	for _, m := range r.moves {
		gi, ok := rowsToGroups[m.old]
		if !ok {
			continue
		}
		delete(outRows, m.old)
		pending = append(pending, moved{group: gi, row: m.new})
	}
	for _, p := range pending {
		outRows[p.row] = p.group
		if p.group < 0 || p.group >= len(groups) {
			continue
		}
		for _, it := range groups[p.group].Items {
			for _, c := range it.Components {
				outInfo[c.ID] = ComponentInfo{ID: c.ID, RowIndex: p.row}
			}
		}
	}
	return outRows, outInfo
}

// Reset discards recorded moves.
func (r *Reindexer) Reset() {
	r.moves = r.moves[:0]
}
