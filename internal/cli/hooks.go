package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logSessionHooks reports design session events to the CLI logger.
type logSessionHooks struct {
	logger *log.Logger
}

func (h logSessionHooks) OnDrop(_ context.Context, componentType string, committed bool) {
	h.logger.Debug("drop", "type", componentType, "committed", committed)
}

func (h logSessionHooks) OnResize(_ context.Context, componentID string, committed bool, d time.Duration) {
	h.logger.Debug("resize", "component", componentID, "committed", committed, "elapsed", d.Round(time.Millisecond))
}

func (h logSessionHooks) OnStaleIndex(_ context.Context, op, componentID string) {
	h.logger.Warn("stale index", "op", op, "component", componentID)
}

// logServerHooks reports session API events to the CLI logger.
type logServerHooks struct {
	logger *log.Logger
}

func (h logServerHooks) OnSessionCreated(_ context.Context, id string) {
	h.logger.Info("session created", "id", id)
}

func (h logServerHooks) OnSessionExpired(_ context.Context, id string) {
	h.logger.Info("session expired", "id", id)
}

func (h logServerHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Error("request failed", "method", method, "route", route, "status", status, "elapsed", d)
	}
}
