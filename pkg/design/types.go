package design

import "github.com/matzehuels/gridcanvas/pkg/grid"

// LayoutMode selects how an item is sized.
type LayoutMode string

const (
	// LayoutGrid items snap to column boundaries.
	LayoutGrid LayoutMode = "grid"
	// LayoutFixed items keep a pixel left/width and split columns as needed.
	LayoutFixed LayoutMode = "fixed"
)

// Valid reports whether m is a known layout mode.
func (m LayoutMode) Valid() bool {
	return m == LayoutGrid || m == LayoutFixed
}

// Component is a placed instance of a palette entry.
type Component struct {
	ID    string         `json:"id" msgpack:"id"`
	Type  string         `json:"type" msgpack:"type"`
	Props map[string]any `json:"props,omitempty" msgpack:"props,omitempty"`
}

// Item is a component placement spanning the inclusive column range
// Start..End of one row.
//
// Space is the width of the item in base columns (canvas width divided by
// the default column count) and never drops below MinSpace. Left and Width
// are the pixel extent of fixed layout items and are zero for grid items.
type Item struct {
	Start      int         `json:"start" msgpack:"start"`
	End        int         `json:"end" msgpack:"end"`
	Space      int         `json:"space" msgpack:"space"`
	MinSpace   int         `json:"minSpace" msgpack:"minSpace"`
	LayoutMode LayoutMode  `json:"layoutMode" msgpack:"layoutMode"`
	Left       float64     `json:"left,omitempty" msgpack:"left,omitempty"`
	Width      float64     `json:"width,omitempty" msgpack:"width,omitempty"`
	Components []Component `json:"components" msgpack:"components"`
}

// ComponentID returns the id of the item's first component, which is the
// key the item is looked up by.
func (it Item) ComponentID() string {
	if len(it.Components) == 0 {
		return ""
	}
	return it.Components[0].ID
}

func (it Item) clone() Item {
	out := it
	out.Components = append([]Component(nil), it.Components...)
	return out
}

// Group is the ordered set of items hosted by one row, sorted by Start.
type Group struct {
	Items []Item `json:"items" msgpack:"items"`
}

func (g Group) clone() Group {
	out := Group{Items: make([]Item, len(g.Items))}
	for i, it := range g.Items {
		out.Items[i] = it.clone()
	}
	return out
}

// ComponentInfo is the back reference from a component to the row hosting
// it. It is an index, not the source of truth for row membership.
type ComponentInfo struct {
	ID       string `json:"id" msgpack:"id"`
	RowIndex int    `json:"rowIndex" msgpack:"rowIndex"`
}

// RowsToGroups maps a row index to the index of the group it hosts.
type RowsToGroups map[int]int

// Clone returns a copy of m. A nil map clones to an empty map.
func (m RowsToGroups) Clone() RowsToGroups {
	out := make(RowsToGroups, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ComponentsInfo maps a component id to its [ComponentInfo].
type ComponentsInfo map[string]ComponentInfo

// Clone returns a copy of m. A nil map clones to an empty map.
func (m ComponentsInfo) Clone() ComponentsInfo {
	out := make(ComponentsInfo, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Selection marks a selected component for highlighting.
type Selection struct {
	ComponentID string `json:"componentId" msgpack:"componentId"`
	RowIndex    int    `json:"rowIndex" msgpack:"rowIndex"`
}

// State is a committed design: the grid together with the groups placed on
// it and both indices.
type State struct {
	Rows           []grid.Row     `json:"rows" msgpack:"rows"`
	Groups         []Group        `json:"groups" msgpack:"groups"`
	RowsToGroups   RowsToGroups   `json:"rowsToGroups" msgpack:"rowsToGroups"`
	ComponentsInfo ComponentsInfo `json:"componentsInfo" msgpack:"componentsInfo"`
}
