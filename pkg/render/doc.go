// Package render turns a design session into human readable views.
//
// # Overview
//
// A session's state is mostly indices: rows of columns, groups of items and
// the two maps tying them together. The subpackages render that state for
// inspection:
//
//   - [term] draws the canvas as a character grid and the indices as
//     tables, styled with lipgloss
//   - [dot] emits the row, group and component relations as Graphviz DOT
//     and renders them to SVG
//
// Both work on an [interaction.Snapshot], so they never touch a live
// session:
//
//	snap := session.Snapshot()
//	fmt.Print(term.Canvas(snap, term.Options{}))
//	svg, err := dot.RenderSVG(ctx, dot.ToDOT(snap))
//
// [term]: github.com/matzehuels/gridcanvas/pkg/render/term
// [dot]: github.com/matzehuels/gridcanvas/pkg/render/dot
// [interaction.Snapshot]: github.com/matzehuels/gridcanvas/pkg/interaction#Snapshot
package render
