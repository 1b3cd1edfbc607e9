// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about design sessions and the HTTP session API.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the engine packages stay
// free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSessionHooks(&mySessionHooks{})
//	    observability.SetServerHooks(&myServerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Session().OnDrop(ctx, "heading", true)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from interaction sessions.
type SessionHooks interface {
	// OnDrop records a drop. committed is false when the drop was rejected
	// (no area, conflict, or an area that does not fit).
	OnDrop(ctx context.Context, componentType string, committed bool)

	// OnResize records the end of a resize. committed is false when the
	// resize was discarded.
	OnResize(ctx context.Context, componentID string, committed bool, duration time.Duration)

	// OnStaleIndex records a lookup through RowsToGroups or ComponentsInfo
	// that did not resolve.
	OnStaleIndex(ctx context.Context, op, componentID string)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP session API.
type ServerHooks interface {
	// OnSessionCreated records a new session.
	OnSessionCreated(ctx context.Context, id string)

	// OnSessionExpired records a session removed after its TTL.
	OnSessionExpired(ctx context.Context, id string)

	// OnRequest records a handled request.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnDrop(context.Context, string, bool)                  {}
func (NoopSessionHooks) OnResize(context.Context, string, bool, time.Duration) {}
func (NoopSessionHooks) OnStaleIndex(context.Context, string, string)          {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnSessionCreated(context.Context, string)                      {}
func (NoopServerHooks) OnSessionExpired(context.Context, string)                      {}
func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sessionHooks SessionHooks = NoopSessionHooks{}
	serverHooks  ServerHooks  = NoopServerHooks{}
	hooksMu      sync.RWMutex
)

// SetSessionHooks registers custom session hooks.
// This should be called once at application startup.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// SetServerHooks registers custom server hooks.
// This should be called once at application startup.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sessionHooks = NoopSessionHooks{}
	serverHooks = NoopServerHooks{}
}
