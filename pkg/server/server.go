package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridcanvas/pkg/config"
	"github.com/matzehuels/gridcanvas/pkg/observability"
	"github.com/matzehuels/gridcanvas/pkg/palette"
	"github.com/matzehuels/gridcanvas/pkg/session"
)

const (
	cleanupInterval = time.Minute
	shutdownTimeout = 10 * time.Second
)

// Options configures a [Server].
type Options struct {
	// Logger receives request and lifecycle logs. Nil uses log.Default().
	Logger *log.Logger
	// Palette resolves item names in drag and drop requests. Nil uses
	// palette.Default().
	Palette *palette.Palette
	// Now is passed to the session store. Nil uses time.Now.
	Now func() time.Time
}

// Server serves the design session API.
type Server struct {
	cfg     config.Config
	logger  *log.Logger
	palette *palette.Palette
	store   *session.Store
	router  chi.Router
}

// New returns a server for cfg. The configuration must be valid.
func New(cfg config.Config, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	pal := opts.Palette
	if pal == nil {
		pal = palette.Default()
	}
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		palette: pal,
		store: session.NewStore(session.Options{
			TTL:         cfg.Server.SessionTTL,
			MaxSessions: cfg.Server.MaxSessions,
			Now:         opts.Now,
		}),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler { return s.router }

// Store returns the session store.
func (s *Server) Store() *session.Store { return s.store }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/palette", s.handlePalette)

		r.Post("/sessions", s.handleCreate)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/drag", s.handleDrag)
			r.Post("/drop", s.handleDrop)
			r.Post("/select", s.handleSelect)
			r.Post("/resize/start", s.handleResizeStart)
			r.Post("/resize/move", s.handleResizeMove)
			r.Post("/resize/end", s.handleResizeEnd)
		})
	})
	return r
}

// logRequests logs every request at debug level and reports it to the
// server hooks with its route pattern.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "elapsed", elapsed)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, elapsed)
	})
}

// ListenAndServe serves on the configured address until ctx is canceled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.store.RunCleanup(cleanupCtx, cleanupInterval)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
