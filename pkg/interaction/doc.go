// Package interaction drives a design canvas from pointer events.
//
// A [Session] is the explicit context shared by the drag and resize
// handlers. It owns the committed design (grid rows, groups and both
// indices) and the transient state of the interaction in progress: the
// previewed area, the hover memo and the resize state machine.
//
// # Dragging
//
// A drag from the palette calls [Session.DragEnter], then [Session.DragOver]
// on every pointer move, and finally [Session.Drop] or [Session.DragEnd].
// DragOver keeps the last offset and its result, so repeated events at the
// same position are free. Drop commits only an area that fits in its row
// and does not overlap placed items; anything else leaves the design as it
// was.
//
// # Resizing
//
// Resizing an item walks the state machine
//
//	idle -> growing/shrinking left/right -> idle
//
// [Session.ResizeStart] returns the clamps for pointer movement,
// [Session.ResizeMove] previews the new span and [Session.ResizeEnd]
// commits it when the span changed and is free of conflicts. A resize that
// ends where it started, or in conflict, does not change the design.
//
// Grid layout items snap to the nearest column boundary. Fixed layout
// items follow the pointer to the pixel; their row is split at the new edge
// when the resize is committed.
package interaction
