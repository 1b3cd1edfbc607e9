package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridcanvas/pkg/buildinfo"
	"github.com/matzehuels/gridcanvas/pkg/config"
	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/grid/hittest"
	"github.com/matzehuels/gridcanvas/pkg/grid/projection"
	"github.com/matzehuels/gridcanvas/pkg/interaction"
)

// =============================================================================
// Requests and Responses
// =============================================================================

// createRequest optionally overrides settings of the configured grid.
type createRequest struct {
	Grid *config.Grid `json:"grid,omitempty" msgpack:"grid,omitempty"`
}

type sessionResponse struct {
	ID       string               `json:"id" msgpack:"id"`
	Snapshot interaction.Snapshot `json:"snapshot" msgpack:"snapshot"`
}

// Drag events.
const (
	dragEnter = "enter"
	dragOver  = "over"
	dragLeave = "leave"
	dragEnd   = "end"
)

type dragRequest struct {
	Event  string        `json:"event" msgpack:"event"`
	Item   string        `json:"item" msgpack:"item"`
	Offset hittest.Point `json:"offset" msgpack:"offset"`
}

type dragResponse struct {
	Area *projection.SelectedArea `json:"area" msgpack:"area"`
}

type dropRequest struct {
	Item string `json:"item" msgpack:"item"`
}

type dropResponse struct {
	Dropped   bool                 `json:"dropped" msgpack:"dropped"`
	Component *design.Component    `json:"component,omitempty" msgpack:"component,omitempty"`
	Snapshot  interaction.Snapshot `json:"snapshot" msgpack:"snapshot"`
}

type componentRequest struct {
	ComponentID string `json:"componentId" msgpack:"componentId"`
}

type selectResponse struct {
	Selection *design.Selection `json:"selection" msgpack:"selection"`
}

type resizeStartResponse struct {
	Clamps interaction.Clamps       `json:"clamps" msgpack:"clamps"`
	Area   *projection.SelectedArea `json:"area" msgpack:"area"`
}

type resizeMoveResponse struct {
	Area    projection.SelectedArea `json:"area" msgpack:"area"`
	Changed bool                    `json:"changed" msgpack:"changed"`
	Phase   interaction.Phase       `json:"phase" msgpack:"phase"`
}

type resizeEndResponse struct {
	Committed bool                 `json:"committed" msgpack:"committed"`
	Snapshot  interaction.Snapshot `json:"snapshot" msgpack:"snapshot"`
}

type healthResponse struct {
	Status   string         `json:"status" msgpack:"status"`
	Sessions int            `json:"sessions" msgpack:"sessions"`
	Build    buildinfo.Info `json:"build" msgpack:"build"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, healthResponse{Status: "ok", Sessions: s.store.Len(), Build: buildinfo.Current()})
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	items := make([]interaction.DragItem, len(s.palette.Items))
	for i, it := range s.palette.Items {
		items[i] = it.DragItem()
	}
	respond(w, r, http.StatusOK, items)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	cfg := s.cfg.Grid
	if req.Grid != nil {
		cfg = cfg.Override(*req.Grid)
	}
	canvas, err := interaction.New(cfg, interaction.Options{Logger: s.logger})
	if err != nil {
		respondError(w, r, err)
		return
	}
	entry, err := s.store.Add(r.Context(), canvas)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.logger.Debug("session created", "id", entry.ID)
	respond(w, r, http.StatusCreated, sessionResponse{ID: entry.ID, Snapshot: canvas.Snapshot()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(id string, c *interaction.Session) (any, error) {
		return sessionResponse{ID: id, Snapshot: c.Snapshot()}, nil
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(_ string, c *interaction.Session) (any, error) {
		switch req.Event {
		case dragEnter:
			if err := c.DragEnter(); err != nil {
				return nil, err
			}
			return dragResponse{}, nil
		case dragOver:
			item, err := s.item(req.Item)
			if err != nil {
				return nil, err
			}
			return dragResponse{Area: c.DragOver(item, req.Offset)}, nil
		case dragLeave:
			c.DragLeave()
			return dragResponse{}, nil
		case dragEnd:
			c.DragEnd()
			return dragResponse{}, nil
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown drag event %q", req.Event)
	})
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(_ string, c *interaction.Session) (any, error) {
		item, err := s.item(req.Item)
		if err != nil {
			return nil, err
		}
		comp, ok := c.Drop(r.Context(), item)
		res := dropResponse{Dropped: ok, Snapshot: c.Snapshot()}
		if ok {
			res.Component = &comp
		}
		return res, nil
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req componentRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(_ string, c *interaction.Session) (any, error) {
		if req.ComponentID == "" {
			c.ClearSelection()
			return selectResponse{}, nil
		}
		sel, ok := c.Click(req.ComponentID)
		if !ok {
			return nil, errors.New(errors.ErrCodeComponentNotFound, "component %q not found", req.ComponentID)
		}
		return selectResponse{Selection: sel}, nil
	})
}

func (s *Server) handleResizeStart(w http.ResponseWriter, r *http.Request) {
	var req componentRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(_ string, c *interaction.Session) (any, error) {
		clamps, err := c.ResizeStart(r.Context(), req.ComponentID)
		if err != nil {
			return nil, err
		}
		return resizeStartResponse{Clamps: clamps, Area: c.SelectedArea()}, nil
	})
}

func (s *Server) handleResizeMove(w http.ResponseWriter, r *http.Request) {
	var ev interaction.ResizeEvent
	if err := decode(r, &ev); err != nil {
		respondError(w, r, err)
		return
	}
	s.withSession(w, r, func(_ string, c *interaction.Session) (any, error) {
		if !c.Resizing() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "resize move: no resize in progress")
		}
		if !ev.Direction.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "resize move: direction must be left or right, got %q", ev.Direction)
		}
		area, changed := c.ResizeMove(ev)
		return resizeMoveResponse{Area: area, Changed: changed, Phase: c.Snapshot().Phase}, nil
	})
}

func (s *Server) handleResizeEnd(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(_ string, c *interaction.Session) (any, error) {
		committed, err := c.ResizeEnd(r.Context())
		if err != nil {
			return nil, err
		}
		return resizeEndResponse{Committed: committed, Snapshot: c.Snapshot()}, nil
	})
}

// withSession runs fn on the session named by the id URL parameter with
// exclusive access and writes its result with status 200. The response is
// encoded before the session is released, since snapshots share storage
// with the session.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(id string, c *interaction.Session) (any, error)) {
	id := chi.URLParam(r, "id")
	entry, err := s.store.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	err = entry.Do(func(c *interaction.Session) error {
		out, err := fn(id, c)
		if err != nil {
			return err
		}
		respond(w, r, http.StatusOK, out)
		return nil
	})
	if err != nil {
		respondError(w, r, err)
	}
}

func (s *Server) item(name string) (interaction.DragItem, error) {
	it, ok := s.palette.Lookup(name)
	if !ok {
		return interaction.DragItem{}, errors.New(errors.ErrCodeNotFound, "palette has no item %q", name)
	}
	return it.DragItem(), nil
}
