// Package pkg provides the core libraries of the gridcanvas document designer.
//
// # Overview
//
// A design is a stack of rows, each split into columns spanning the full
// canvas width. Components dragged from a palette occupy a run of columns
// in one row; rows grow, split and merge as components are dropped and
// resized. The pkg directory is organized into four areas:
//
//  1. Grid model - [grid], [grid/hittest] and [grid/projection]
//  2. Design model - [design] with its row and component indices
//  3. Interaction - [interaction] sessions driven by drag and resize events
//  4. Surfaces - [script], [render], [session] and [server]
//
// # Architecture
//
// The typical flow of a drop:
//
//	pointer offset
//	     ↓
//	[grid/hittest] (cell under the pointer)
//	     ↓
//	[grid/projection] (columns the item would cover)
//	     ↓
//	[grid] UpdateRows (fill columns, fit row heights, renumber rows)
//	     ↓
//	[design] AddComponent (groups, RowsToGroups, ComponentsInfo)
//
// # Quick Start
//
//	s, _ := interaction.New(config.Default().Grid, interaction.Options{})
//	item, _ := palette.Default().Lookup("heading")
//
//	_ = s.DragEnter()
//	s.DragOver(item.DragItem(), hittest.Point{X: 10, Y: 10})
//	comp, ok := s.Drop(ctx, item.DragItem())
//
//	fmt.Print(term.Canvas(s.Snapshot(), term.Options{}))
//
// # Supporting Packages
//
// [config] loads the TOML configuration, [palette] the YAML palette of
// draggable items, [errors] defines the coded errors shared by every
// package and [observability] the hooks the CLI and server register.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/grid
// [grid/hittest]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/grid/hittest
// [grid/projection]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/grid/projection
// [design]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/design
// [interaction]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/interaction
// [script]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/script
// [render]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/render
// [session]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/session
// [server]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/config
// [palette]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/palette
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridcanvas/pkg/observability
package pkg
