package interaction

import (
	"context"
	"math"
	"time"

	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/grid"
	"github.com/matzehuels/gridcanvas/pkg/grid/hittest"
	"github.com/matzehuels/gridcanvas/pkg/grid/projection"
	"github.com/matzehuels/gridcanvas/pkg/observability"
)

// Direction is the item edge being dragged.
type Direction string

const (
	// DirectionLeft moves the start edge of the item.
	DirectionLeft Direction = "left"
	// DirectionRight moves the end edge of the item.
	DirectionRight Direction = "right"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Phase is the state of the resize state machine.
type Phase string

// Phases of a resize. A resize starts idle and takes the phase of its last
// accepted move; it returns to idle when it ends.
const (
	PhaseIdle           Phase = "idle"
	PhaseGrowingLeft    Phase = "growing-left"    // start edge moving left
	PhaseShrinkingLeft  Phase = "shrinking-left"  // start edge moving right
	PhaseGrowingRight   Phase = "growing-right"   // end edge moving right
	PhaseShrinkingRight Phase = "shrinking-right" // end edge moving left
)

func phaseFor(d Direction, growing bool) Phase {
	switch {
	case d == DirectionLeft && growing:
		return PhaseGrowingLeft
	case d == DirectionLeft:
		return PhaseShrinkingLeft
	case growing:
		return PhaseGrowingRight
	default:
		return PhaseShrinkingRight
	}
}

// ResizeEvent is a pointer move while an edge is dragged. Position is the
// distance in pixels the edge moved away from its position at resize start:
// positive values grow the item, negative values shrink it. PrevPosition is
// the Position of the previous event.
type ResizeEvent struct {
	Direction    Direction `json:"direction" msgpack:"direction"`
	Position     float64   `json:"position" msgpack:"position"`
	PrevPosition float64   `json:"prevPosition" msgpack:"prevPosition"`
}

// Clamps bound Position for each edge. Min values are zero or negative
// (how far the item may shrink), Max values are the distance from the edge
// to the canvas bound. All values are whole pixels.
type Clamps struct {
	MinLeft  float64 `json:"minLeft" msgpack:"minLeft"`
	MinRight float64 `json:"minRight" msgpack:"minRight"`
	MaxLeft  float64 `json:"maxLeft" msgpack:"maxLeft"`
	MaxRight float64 `json:"maxRight" msgpack:"maxRight"`
}

func (c Clamps) allows(ev ResizeEvent) bool {
	lo, hi := c.MinRight, c.MaxRight
	if ev.Direction == DirectionLeft {
		lo, hi = c.MinLeft, c.MaxLeft
	}
	return ev.Position >= lo && ev.Position <= hi
}

type resizeState struct {
	id       string
	item     design.Item
	clamps   Clamps
	original projection.SelectedArea
	current  projection.SelectedArea
	phase    Phase
	started  time.Time
}

// Resizing reports whether a resize is in progress.
func (s *Session) Resizing() bool { return s.isResizing }

// ResizeStart begins resizing the item holding component id. It returns
// the clamps the caller should apply to pointer movement and previews the
// item's current span.
func (s *Session) ResizeStart(ctx context.Context, id string) (Clamps, error) {
	if err := s.busy("resize start"); err != nil {
		return Clamps{}, err
	}
	ref, item, ok := design.FindItem(s.state.RowsToGroups, s.state.ComponentsInfo, s.state.Groups, id)
	if !ok || ref.Row >= len(s.state.Rows) {
		return Clamps{}, s.stale(ctx, "resize start", id)
	}
	box, ok := hittest.ColBox(s.state.Rows, s.origin, ref.Row, item.Start)
	if !ok || item.End >= len(s.state.Rows[ref.Row].Cols) {
		return Clamps{}, s.stale(ctx, "resize start", id)
	}

	area := projection.FindProjectedFilledArea(s.state.Rows, box, 1, item.End-item.Start+1)
	// The item's own columns are filled.
	area.Conflict = false

	left := s.rowLeft(area.AreaBox.Left)
	right := left + area.AreaBox.Width
	clamps := Clamps{
		MaxLeft:  math.Round(left),
		MaxRight: math.Round(s.cfg.BaseWidth - right),
	}
	if item.Space != item.MinSpace {
		shrink := -math.Round(math.Abs(float64(item.Space-item.MinSpace)) * s.cfg.ColWidth())
		clamps.MinLeft, clamps.MinRight = shrink, shrink
	}

	s.resize = &resizeState{
		id:       id,
		item:     item,
		clamps:   clamps,
		original: area,
		current:  area,
		phase:    PhaseIdle,
		started:  time.Now(),
	}
	s.isResizing = true
	s.area = &s.resize.current

	s.logger.Debug("resize started", "component", id, "row", ref.Row, "start", item.Start, "end", item.End)
	return clamps, nil
}

// ResizeMove recomputes the previewed area for ev. It returns the current
// preview and whether it changed. Moves outside the clamps, moves that
// would invert the span and moves that do not change the span are rejected
// and keep the previous preview. A changed preview may be in conflict.
func (s *Session) ResizeMove(ev ResizeEvent) (projection.SelectedArea, bool) {
	r := s.resize
	if r == nil {
		return projection.SelectedArea{}, false
	}
	if !ev.Direction.Valid() || !r.clamps.allows(ev) {
		return r.current, false
	}
	var (
		next projection.SelectedArea
		ok   bool
	)
	if r.item.LayoutMode == design.LayoutFixed {
		next, ok = s.fixedCandidate(r, ev)
	} else {
		next, ok = s.gridCandidate(r, ev)
	}
	if !ok {
		return r.current, false
	}

	next.Conflict = s.growsIntoFilled(r.original, next)
	if ev.Position != ev.PrevPosition {
		r.phase = phaseFor(ev.Direction, ev.Position > ev.PrevPosition)
	}
	r.current = next
	s.area = &r.current
	return next, true
}

// gridCandidate snaps the dragged edge to the nearest column boundary.
func (s *Session) gridCandidate(r *resizeState, ev ResizeEvent) (projection.SelectedArea, bool) {
	orig := r.original
	rows := s.state.Rows
	row := rows[orig.Row]
	start, end := orig.StartCol, orig.EndCol

	if ev.Direction == DirectionRight {
		edge := s.rowLeft(orig.AreaBox.Right()) + ev.Position
		c := s.walk(row, orig.EndCol, edge, hittest.SideRight, ev.Position >= 0)
		end = c
		if edge-row.ColLeft(c) < row.Cols[c].Width/2 {
			end = c - 1
		}
	} else {
		edge := s.rowLeft(orig.AreaBox.Left) - ev.Position
		c := s.walk(row, orig.StartCol, edge, hittest.SideLeft, ev.Position < 0)
		start = c
		if row.ColLeft(c+1)-edge < row.Cols[c].Width/2 {
			start = c + 1
		}
	}
	if start > end || start < 0 || end >= len(row.Cols) {
		return projection.SelectedArea{}, false
	}
	if start == r.current.StartCol && end == r.current.EndCol {
		return projection.SelectedArea{}, false
	}

	next := orig
	next.StartCol, next.EndCol = start, end
	next.AreaBox.Left = s.origin.X + row.ColLeft(start)
	next.AreaBox.Width = hittest.DistanceFromCol(rows,
		hittest.Coord{Row: orig.Row, Col: start},
		hittest.Coord{Row: orig.Row, Col: end},
		true, true)
	return next, true
}

// fixedCandidate moves the dragged edge by the exact pixel offset. The
// columns under the new edge are resolved here; they are split to match
// the edge when the resize is committed.
func (s *Session) fixedCandidate(r *resizeState, ev ResizeEvent) (projection.SelectedArea, bool) {
	if ev.Position == ev.PrevPosition {
		return projection.SelectedArea{}, false
	}
	orig := r.original
	row := s.state.Rows[orig.Row]

	next := orig
	next.AreaBox.Width = orig.AreaBox.Width + ev.Position
	if next.AreaBox.Width <= grid.Epsilon {
		return projection.SelectedArea{}, false
	}
	if ev.Direction == DirectionRight {
		edge := s.rowLeft(orig.AreaBox.Right()) + ev.Position
		next.EndCol = s.walk(row, orig.EndCol, edge, hittest.SideRight, ev.Position >= 0)
	} else {
		next.AreaBox.Left = orig.AreaBox.Left - ev.Position
		edge := s.rowLeft(next.AreaBox.Left)
		next.StartCol = s.walk(row, orig.StartCol, edge, hittest.SideLeft, ev.Position < 0)
	}
	if next.StartCol > next.EndCol {
		return projection.SelectedArea{}, false
	}
	if next.AreaBox == r.current.AreaBox {
		return projection.SelectedArea{}, false
	}
	return next, true
}

// walk finds the column holding a dragged edge at x, starting from column
// from of row. forward walks towards higher column indices.
func (s *Session) walk(row grid.Row, from int, x float64, side hittest.Side, forward bool) int {
	step := 1
	if !forward {
		step = -1
	}
	base := hittest.ColInfo{
		Coord: hittest.Coord{Row: row.Index, Col: from},
		Box:   hittest.Box{Left: row.ColLeft(from), Width: row.Cols[from].Width, Height: row.Height},
	}
	at, _ := hittest.FindStartCol(s.state.Rows, hittest.Probe{Point: hittest.Point{X: x}, Side: side}, base, step)
	return at.Col
}

// growsIntoFilled reports whether next covers filled columns outside the
// original span. Columns given up by shrinking never conflict.
func (s *Session) growsIntoFilled(orig, next projection.SelectedArea) bool {
	row := s.state.Rows[orig.Row]
	if next.EndCol > orig.EndCol && !grid.AreColsEmpty(row, next.EndCol, orig.EndCol, grid.ExcludeTo) {
		return true
	}
	if next.StartCol < orig.StartCol && !grid.AreColsEmpty(row, next.StartCol, orig.StartCol, grid.ExcludeTo) {
		return true
	}
	return false
}

// ResizeEnd finishes the resize. The previewed span is committed to the
// grid and the item when it differs from the original span and is free of
// conflicts; otherwise the preview is discarded and nothing changes. It
// reports whether the resize was committed. A component that can no longer
// be found ends the resize with COMPONENT_NOT_FOUND.
func (s *Session) ResizeEnd(ctx context.Context) (bool, error) {
	r := s.resize
	if r == nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "resize end: no resize in progress")
	}
	s.resize = nil
	s.isResizing = false
	s.area = nil

	committed, err := s.commitResize(ctx, r)
	observability.Session().OnResize(ctx, r.id, committed, time.Since(r.started))
	return committed, err
}

func (s *Session) commitResize(ctx context.Context, r *resizeState) (bool, error) {
	orig, cur := r.original, r.current
	fixed := r.item.LayoutMode == design.LayoutFixed

	unchanged := cur.StartCol == orig.StartCol && cur.EndCol == orig.EndCol
	if fixed {
		unchanged = math.Abs(cur.AreaBox.Width-orig.AreaBox.Width) < grid.Epsilon
	}
	if unchanged || cur.Conflict {
		s.logger.Debug("resize discarded", "component", r.id, "unchanged", unchanged, "conflict", cur.Conflict)
		return false, nil
	}

	span := grid.Span{Row: cur.Row, StartCol: cur.StartCol, EndCol: cur.EndCol}
	if fixed {
		span.Left = s.rowLeft(cur.AreaBox.Left)
		span.Width = cur.AreaBox.Width
	}

	var (
		rx     design.Reindexer
		splits []int
	)
	res, ok := grid.UpdateRows(s.state.Rows, grid.Update{
		Previous:            &grid.Span{Row: orig.Row, StartCol: orig.StartCol, EndCol: orig.EndCol, Empty: true},
		Current:             span,
		DefaultRowHeight:    s.cfg.DefaultRowHeight,
		DefaultNumberOfCols: s.cfg.DefaultNumberOfCols,
		TotalWidth:          s.cfg.BaseWidth,
		OnRowIndexChange:    rx.OnRowIndexChange,
		OnColSplit:          func(_ grid.Row, col int) { splits = append(splits, col) },
	})
	if !ok {
		s.logger.Warn("resize no longer matches the grid", "component", r.id, "row", cur.Row)
		return false, nil
	}
	rowsToGroups, info := rx.Apply(s.state.RowsToGroups, s.state.ComponentsInfo, s.state.Groups)

	groups := s.state.Groups
	if gi, ok := rowsToGroups[res.Current.Row]; ok {
		for _, at := range splits {
			groups = design.ShiftColumns(groups, gi, at)
		}
	}
	groups, ok = design.UpdateItem(rowsToGroups, info, groups, r.id, design.Change{
		Start: res.Current.StartCol,
		End:   res.Current.EndCol,
		Space: s.space(cur.AreaBox.Width),
		Left:  span.Left,
		Width: span.Width,
	})
	if !ok {
		return false, s.stale(ctx, "resize end", r.id)
	}

	s.state = design.State{
		Rows:           res.Rows,
		Groups:         groups,
		RowsToGroups:   rowsToGroups,
		ComponentsInfo: info,
	}
	s.logger.Debug("resize committed",
		"component", r.id,
		"start", res.Current.StartCol,
		"end", res.Current.EndCol,
		"splits", len(splits))
	return true, nil
}
