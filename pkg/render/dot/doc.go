// Package dot renders the indices of a design as a Graphviz graph.
//
// # Overview
//
// A design keeps two indices next to its groups: RowsToGroups maps a row to
// the group it hosts, and ComponentsInfo points every component back at its
// row. [ToDOT] draws both as edges so that a broken index is visible at a
// glance:
//
//   - row -> group edges come from RowsToGroups
//   - group -> component edges come from the group's items
//   - dashed component -> row edges are the ComponentsInfo back references;
//     a back reference that disagrees with the hosting row is drawn red
//
// # Rendering
//
// [RenderSVG] lays the DOT source out in-process:
//
//	svg, err := dot.RenderSVG(ctx, dot.ToDOT(snap))
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for SVG rendering, which
// needs no system Graphviz installation.
package dot
