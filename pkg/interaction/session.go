package interaction

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridcanvas/pkg/config"
	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/grid"
	"github.com/matzehuels/gridcanvas/pkg/grid/hittest"
	"github.com/matzehuels/gridcanvas/pkg/grid/projection"
	"github.com/matzehuels/gridcanvas/pkg/observability"
)

// Size is the pixel size of a dragged palette item.
type Size struct {
	Width  float64 `json:"width" msgpack:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" msgpack:"height" yaml:"height" toml:"height"`
}

// DragItem is the payload supplied by a drag source.
type DragItem struct {
	Name         string            `json:"name" msgpack:"name"`
	Props        map[string]any    `json:"props,omitempty" msgpack:"props,omitempty"`
	Size         Size              `json:"size" msgpack:"size"`
	ConsumedRows int               `json:"consumedRows" msgpack:"consumedRows"`
	ConsumedCols int               `json:"consumedCols" msgpack:"consumedCols"`
	MinSpace     int               `json:"minSpace,omitempty" msgpack:"minSpace,omitempty"`
	LayoutMode   design.LayoutMode `json:"layoutMode,omitempty" msgpack:"layoutMode,omitempty"`
}

// Options configures a [Session].
type Options struct {
	// Logger receives debug and warning messages. Nil uses log.Default().
	Logger *log.Logger
	// NewID generates component ids. Nil uses random UUIDs.
	NewID func() string
	// Origin is the canvas position of the grid's top-left corner. Pointer
	// offsets and area boxes are expressed relative to the same frame.
	Origin hittest.Point
}

// hoverMemo is the last DragOver input and the area computed for it.
type hoverMemo struct {
	valid  bool
	offset hittest.Point
	item   string
	area   *projection.SelectedArea
}

// Session is the context of one design canvas: the committed design and
// the transient state of the drag or resize in progress.
//
// A Session is not safe for concurrent use. Only one drag or resize can be
// active at a time.
type Session struct {
	cfg    config.Grid
	logger *log.Logger
	newID  func() string
	origin hittest.Point

	state     design.State
	selection *design.Selection

	area     *projection.SelectedArea
	dragging bool
	hover    hoverMemo

	resize     *resizeState
	isResizing bool
}

// New creates a session with a freshly generated grid whose last row is
// the placeholder.
func New(cfg config.Grid, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rows := grid.GenerateRows(cfg.BaseWidth, cfg.DefaultNumberOfRows, cfg.DefaultNumberOfCols, cfg.DefaultRowHeight)
	grid.MarkPlaceholder(rows)

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		cfg:    cfg,
		logger: logger,
		newID:  opts.NewID,
		origin: opts.Origin,
		state: design.State{
			Rows:           rows,
			RowsToGroups:   design.RowsToGroups{},
			ComponentsInfo: design.ComponentsInfo{},
		},
	}, nil
}

// Config returns the grid configuration of the session.
func (s *Session) Config() config.Grid { return s.cfg }

// Origin returns the canvas position of the grid's top-left corner.
func (s *Session) Origin() hittest.Point { return s.origin }

// State returns the committed design. The returned value shares storage
// with the session and must not be modified.
func (s *Session) State() design.State { return s.state }

// Selection returns the selected component, or nil.
func (s *Session) Selection() *design.Selection { return s.selection }

// SelectedArea returns the area currently previewed by a drag or resize,
// or nil.
func (s *Session) SelectedArea() *projection.SelectedArea { return s.area }

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	Config       config.Grid              `json:"config" msgpack:"config"`
	State        design.State             `json:"state" msgpack:"state"`
	Selection    *design.Selection        `json:"selection" msgpack:"selection"`
	SelectedArea *projection.SelectedArea `json:"selectedArea" msgpack:"selectedArea"`
	TotalHeight  float64                  `json:"totalHeight" msgpack:"totalHeight"`
	Dragging     bool                     `json:"dragging" msgpack:"dragging"`
	Resizing     bool                     `json:"resizing" msgpack:"resizing"`
	Phase        Phase                    `json:"phase" msgpack:"phase"`
}

// Snapshot returns the current committed and transient state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Config:       s.cfg,
		State:        s.state,
		Selection:    s.selection,
		SelectedArea: s.area,
		TotalHeight:  grid.TotalHeight(s.state.Rows),
		Dragging:     s.dragging,
		Resizing:     s.isResizing,
		Phase:        PhaseIdle,
	}
	if s.resize != nil {
		snap.Phase = s.resize.phase
	}
	return snap
}

// Click selects the component with the given id. Clicking the selected
// component again leaves the selection untouched. Unknown ids return false.
func (s *Session) Click(id string) (*design.Selection, bool) {
	if s.selection != nil && s.selection.ComponentID == id {
		return s.selection, true
	}
	sel := design.SelectComponent(id, s.state.ComponentsInfo)
	if sel == nil {
		return s.selection, false
	}
	s.selection = sel
	return sel, true
}

// ClearSelection removes the current selection.
func (s *Session) ClearSelection() {
	s.selection = nil
}

func (s *Session) busy(op string) error {
	switch {
	case s.isResizing:
		return errors.New(errors.ErrCodeBusy, "%s: a resize is in progress", op)
	case s.dragging:
		return errors.New(errors.ErrCodeBusy, "%s: a drag is in progress", op)
	}
	return nil
}

func (s *Session) stale(ctx context.Context, op, id string) error {
	s.logger.Warn("stale design index", "op", op, "component", id)
	observability.Session().OnStaleIndex(ctx, op, id)
	return errors.New(errors.ErrCodeComponentNotFound, "%s: component %q not found", op, id)
}

// rowLeft converts a canvas x position into an offset from the grid's
// left edge.
func (s *Session) rowLeft(x float64) float64 {
	return x - s.origin.X
}
