// Package session keeps live design sessions for the HTTP API.
//
// A design session ([interaction.Session]) is not safe for concurrent use,
// so every session held by a [Store] is wrapped in an [Entry] that
// serializes access:
//
//	entry, err := store.Get(ctx, id)
//	if err != nil {
//	    return err // SESSION_NOT_FOUND
//	}
//	err = entry.Do(func(s *interaction.Session) error {
//	    _, err := s.ResizeStart(ctx, componentID)
//	    return err
//	})
//
// # Expiration
//
// Sessions expire after a sliding TTL: every successful [Store.Get] extends
// the deadline. Expired sessions are removed lazily by Get and eagerly by
// [Store.Cleanup], which [Store.RunCleanup] calls on a ticker.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/interaction"
	"github.com/matzehuels/gridcanvas/pkg/observability"
)

// Default limits.
const (
	// DefaultTTL is the default idle time before a session expires.
	DefaultTTL = 30 * time.Minute

	// DefaultMaxSessions is the default number of live sessions.
	DefaultMaxSessions = 1000
)

// Entry is a live session together with the lock serializing its use.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	mu     sync.Mutex
	canvas *interaction.Session

	// expiresAt is guarded by the owning Store's lock.
	expiresAt time.Time
}

// Do runs fn with exclusive access to the design session.
func (e *Entry) Do(fn func(*interaction.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.canvas)
}

// Options configures a [Store].
type Options struct {
	// TTL is the idle time before a session expires. Zero uses DefaultTTL.
	TTL time.Duration
	// MaxSessions bounds the number of live sessions. Zero uses DefaultMaxSessions.
	MaxSessions int
	// Now returns the current time. Nil uses time.Now.
	Now func() time.Time
}

// Store is an in-memory set of live sessions. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Entry
	ttl      time.Duration
	max      int
	now      func() time.Time
}

// NewStore returns an empty store.
func NewStore(opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		sessions: make(map[string]*Entry),
		ttl:      opts.TTL,
		max:      opts.MaxSessions,
		now:      opts.Now,
	}
}

// GenerateID returns a new random session id.
func GenerateID() string {
	return uuid.NewString()
}

// Add registers canvas under a new id. It fails with UNAVAILABLE when the
// store is full after removing expired sessions.
func (s *Store) Add(ctx context.Context, canvas *interaction.Session) (*Entry, error) {
	s.mu.Lock()
	if len(s.sessions) >= s.max {
		s.sweepLocked(ctx)
	}
	if len(s.sessions) >= s.max {
		s.mu.Unlock()
		return nil, errors.New(errors.ErrCodeUnavailable, "session limit of %d reached", s.max)
	}
	now := s.now()
	e := &Entry{
		ID:        GenerateID(),
		CreatedAt: now,
		canvas:    canvas,
		expiresAt: now.Add(s.ttl),
	}
	s.sessions[e.ID] = e
	s.mu.Unlock()

	observability.Server().OnSessionCreated(ctx, e.ID)
	return e, nil
}

// Get returns the session with id and extends its deadline. Unknown and
// expired sessions return SESSION_NOT_FOUND.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.sessions, id)
		observability.Server().OnSessionExpired(ctx, id)
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q expired", id)
	}
	e.expiresAt = now.Add(s.ttl)
	return e, nil
}

// Delete removes the session with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of sessions, including expired ones not yet
// removed.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup removes expired sessions and returns how many were removed.
func (s *Store) Cleanup(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(ctx)
}

func (s *Store) sweepLocked(ctx context.Context) int {
	now := s.now()
	var n int
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
			observability.Server().OnSessionExpired(ctx, id)
			n++
		}
	}
	return n
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (s *Store) RunCleanup(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Cleanup(ctx)
		}
	}
}
