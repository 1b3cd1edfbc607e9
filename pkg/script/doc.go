// Package script replays recorded canvas interactions.
//
// # Overview
//
// A script is a TOML file with a list of steps. Each step is one user
// gesture against an [interaction.Session]: dropping a palette item at a
// pointer position, selecting a component or dragging one of its edges.
// Scripts make interaction sequences reproducible for the CLI (play and
// inspect) and for tests.
//
//	name = "heading and text"
//
//	[grid]
//	default_number_of_cols = 12
//
//	[[step]]
//	action = "drop"
//	item = "heading"
//	x = 10
//	y = 10
//	expect = "ok"
//
//	[[step]]
//	action = "resize"
//	component = "#1"
//	direction = "right"
//	positions = [100, 200]
//
// # Actions
//
//   - drag: enters the canvas and previews item at (x, y); the preview
//     stays open
//   - drop: enters, previews item at (x, y) and drops it
//   - leave: cancels an open drag
//   - select: clicks component
//   - clear: clears the selection
//   - resize: starts resizing component, moves the edge in direction
//     through positions and releases it
//
// # Component References
//
// Component ids are generated while the script runs, so steps refer to
// components by reference: "#n" is the n-th component dropped by the
// script, "$last" the most recent one and "$selected" the selected one.
// Any other value is used as a literal id.
//
// # Expectations
//
// A step with expect = "ok" must succeed and one with expect = "rejected"
// must not; a mismatch stops the run with a CONFLICT error. After every
// step the runner checks the grid invariants and that every component is
// reachable through both design indices.
//
// [interaction.Session]: github.com/matzehuels/gridcanvas/pkg/interaction#Session
package script
