package design

import (
	"sort"

	"github.com/google/uuid"

	"github.com/matzehuels/gridcanvas/pkg/grid"
)

// ComponentSpec describes the component being added.
type ComponentSpec struct {
	Type  string
	Props map[string]any
}

// ColRange is an inclusive column range.
type ColRange struct {
	Start int `json:"start" msgpack:"start"`
	End   int `json:"end" msgpack:"end"`
}

// AddContext carries the committed state and the accepted placement for
// [AddComponent]. Rows must already contain the placement (see
// grid.UpdateRows); RowsToGroups and ComponentsInfo must already be
// repaired for any row renumbering that produced them.
type AddContext struct {
	Rows           []grid.Row
	Groups         []Group
	RowsToGroups   RowsToGroups
	ComponentsInfo ComponentsInfo

	ReferenceRow int
	FromCol      ColRange

	// Space is the item width in base columns. Zero means the number of
	// columns in FromCol.
	Space int
	// MinSpace defaults to 1 and is capped at Space.
	MinSpace   int
	LayoutMode LayoutMode
	// Left and Width are recorded for fixed layout items.
	Left, Width float64

	// NewID generates the component id. Nil uses a random UUID.
	NewID func() string
}

// AddResult is the outcome of [AddComponent].
type AddResult struct {
	Groups         []Group
	NewComponent   Component
	RowsToGroups   RowsToGroups
	ComponentsInfo ComponentsInfo
}

// AddComponent places a new component on ctx.ReferenceRow spanning
// ctx.FromCol. The item joins the group already hosted by the row, ordered
// by its start column, or starts a new group registered in RowsToGroups.
// The new component id is recorded in ComponentsInfo.
//
// None of the inputs are modified. AddComponent returns false when the
// reference row or column range does not exist in ctx.Rows.
func AddComponent(spec ComponentSpec, ctx AddContext) (AddResult, bool) {
	if ctx.ReferenceRow < 0 || ctx.ReferenceRow >= len(ctx.Rows) {
		return AddResult{}, false
	}
	cols := len(ctx.Rows[ctx.ReferenceRow].Cols)
	if ctx.FromCol.Start < 0 || ctx.FromCol.Start > ctx.FromCol.End || ctx.FromCol.End >= cols {
		return AddResult{}, false
	}

	newID := ctx.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	comp := Component{ID: newID(), Type: spec.Type, Props: spec.Props}

	space := ctx.Space
	if space <= 0 {
		space = ctx.FromCol.End - ctx.FromCol.Start + 1
	}
	minSpace := min(max(ctx.MinSpace, 1), space)
	mode := ctx.LayoutMode
	if !mode.Valid() {
		mode = LayoutGrid
	}
	item := Item{
		Start:      ctx.FromCol.Start,
		End:        ctx.FromCol.End,
		Space:      space,
		MinSpace:   minSpace,
		LayoutMode: mode,
		Components: []Component{comp},
	}
	if mode == LayoutFixed {
		item.Left, item.Width = ctx.Left, ctx.Width
	}

	groups := append([]Group(nil), ctx.Groups...)
	rowsToGroups := ctx.RowsToGroups.Clone()
	info := ctx.ComponentsInfo.Clone()

	if gi, ok := rowsToGroups[ctx.ReferenceRow]; ok && gi >= 0 && gi < len(groups) {
		g := groups[gi].clone()
		at := sort.Search(len(g.Items), func(i int) bool { return g.Items[i].Start > item.Start })
		g.Items = append(g.Items[:at], append([]Item{item}, g.Items[at:]...)...)
		groups[gi] = g
	} else {
		groups = append(groups, Group{Items: []Item{item}})
		rowsToGroups[ctx.ReferenceRow] = len(groups) - 1
	}
	info[comp.ID] = ComponentInfo{ID: comp.ID, RowIndex: ctx.ReferenceRow}

	return AddResult{
		Groups:         groups,
		NewComponent:   comp,
		RowsToGroups:   rowsToGroups,
		ComponentsInfo: info,
	}, true
}

// SelectComponent returns a selection token for id, or nil when the
// component is unknown.
func SelectComponent(id string, info ComponentsInfo) *Selection {
	ci, ok := info[id]
	if !ok {
		return nil
	}
	return &Selection{ComponentID: id, RowIndex: ci.RowIndex}
}

// ItemRef locates an item inside a group slice.
type ItemRef struct {
	Row   int
	Group int
	Index int
}

// FindItem resolves the item holding component id through both indices.
// It returns false when any lookup is stale.
func FindItem(rowsToGroups RowsToGroups, info ComponentsInfo, groups []Group, id string) (ItemRef, Item, bool) {
	ci, ok := info[id]
	if !ok {
		return ItemRef{}, Item{}, false
	}
	gi, ok := rowsToGroups[ci.RowIndex]
	if !ok || gi < 0 || gi >= len(groups) {
		return ItemRef{}, Item{}, false
	}
	for i, it := range groups[gi].Items {
		for _, c := range it.Components {
			if c.ID == id {
				return ItemRef{Row: ci.RowIndex, Group: gi, Index: i}, it, true
			}
		}
	}
	return ItemRef{}, Item{}, false
}

// ItemAt returns the item covering column col of row.
func ItemAt(rowsToGroups RowsToGroups, groups []Group, row, col int) (Item, bool) {
	gi, ok := rowsToGroups[row]
	if !ok || gi < 0 || gi >= len(groups) {
		return Item{}, false
	}
	for _, it := range groups[gi].Items {
		if col >= it.Start && col <= it.End {
			return it, true
		}
	}
	return Item{}, false
}

// Change is the new extent of an item after a resize.
type Change struct {
	Start int
	End   int
	// Space is the new width in base columns. Zero keeps the column count.
	Space int
	// Left and Width apply to fixed layout items only.
	Left, Width float64
}

// UpdateItem applies change to the item holding component id and returns a
// new group slice in which only that item differs. It returns groups and
// false when the item cannot be resolved or the change is inverted.
func UpdateItem(rowsToGroups RowsToGroups, info ComponentsInfo, groups []Group, id string, change Change) ([]Group, bool) {
	ref, item, ok := FindItem(rowsToGroups, info, groups, id)
	if !ok || change.Start < 0 || change.Start > change.End {
		return groups, false
	}

	item = item.clone()
	item.Start, item.End = change.Start, change.End
	item.Space = change.Space
	if item.Space <= 0 {
		item.Space = change.End - change.Start + 1
	}
	item.Space = max(item.Space, item.MinSpace)
	if item.LayoutMode == LayoutFixed {
		item.Left, item.Width = change.Left, change.Width
	}

	out := append([]Group(nil), groups...)
	g := Group{Items: append([]Item(nil), groups[ref.Group].Items...)}
	g.Items[ref.Index] = item
	out[ref.Group] = g
	return out, true
}

// ShiftColumns repairs the item spans of group after column at of its row
// was split in two. Items starting right of the split move one column to
// the right and items containing the split grow by one column.
func ShiftColumns(groups []Group, group, at int) []Group {
	if group < 0 || group >= len(groups) {
		return groups
	}
	out := append([]Group(nil), groups...)
	g := Group{Items: append([]Item(nil), groups[group].Items...)}
	for i, it := range g.Items {
		switch {
		case it.Start > at:
			it.Start++
			it.End++
		case it.End >= at:
			it.End++
		default:
			continue
		}
		g.Items[i] = it
	}
	out[group] = g
	return out
}
