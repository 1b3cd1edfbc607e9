// Package server exposes design sessions over HTTP.
//
// # Overview
//
// Every session is an independent canvas held in a [session.Store]. Clients
// forward pointer gestures as they happen and get the projected area or the
// committed design back:
//
//	POST   /api/sessions                    create a canvas
//	GET    /api/sessions/{id}               snapshot
//	DELETE /api/sessions/{id}               discard
//	POST   /api/sessions/{id}/drag          {"event": "enter|over|leave|end", "item", "offset"}
//	POST   /api/sessions/{id}/drop          {"item"}
//	POST   /api/sessions/{id}/select        {"componentId"}
//	POST   /api/sessions/{id}/resize/start  {"componentId"}
//	POST   /api/sessions/{id}/resize/move   {"direction", "position", "prevPosition"}
//	POST   /api/sessions/{id}/resize/end
//	GET    /api/palette
//	GET    /api/health
//
// # Encoding
//
// Requests and responses are JSON. Clients sending Accept:
// application/msgpack get msgpack responses, and request bodies with
// Content-Type: application/msgpack are decoded as msgpack.
//
// # Errors
//
// Failures are returned as {"error": {"code", "message"}} with the status
// derived from the error code: INVALID_* map to 400, *NOT_FOUND to 404,
// CONFLICT and BUSY to 409 and UNAVAILABLE (session limit) to 503.
// Rejected drops and resizes are not errors; they are reported in the
// response body.
//
// [session.Store]: github.com/matzehuels/gridcanvas/pkg/session#Store
package server
