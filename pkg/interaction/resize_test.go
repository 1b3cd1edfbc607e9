package interaction

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/grid"
	"github.com/matzehuels/gridcanvas/pkg/grid/hittest"
)

func itemOf(t *testing.T, s *Session, id string) design.Item {
	t.Helper()
	st := s.State()
	_, it, ok := design.FindItem(st.RowsToGroups, st.ComponentsInfo, st.Groups, id)
	if !ok {
		t.Fatalf("FindItem(%s) ok = false", id)
	}
	return it
}

func right(pos, prev float64) ResizeEvent {
	return ResizeEvent{Direction: DirectionRight, Position: pos, PrevPosition: prev}
}

func left(pos, prev float64) ResizeEvent {
	return ResizeEvent{Direction: DirectionLeft, Position: pos, PrevPosition: prev}
}

func TestResizeStartClamps(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(4), hittest.Point{X: 210, Y: 10})

	clamps, err := s.ResizeStart(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("ResizeStart() error = %v", err)
	}
	want := Clamps{MinLeft: -300, MinRight: -300, MaxLeft: 200, MaxRight: 600}
	if clamps != want {
		t.Errorf("ResizeStart() = %+v, want %+v", clamps, want)
	}
	area := s.SelectedArea()
	if area == nil || area.StartCol != 2 || area.EndCol != 5 || area.Conflict {
		t.Errorf("initial area = %+v", area)
	}
	if !s.Resizing() {
		t.Error("Resizing() = false")
	}
}

func TestResizeStartAtMinSpace(t *testing.T) {
	s := newSession(t, 1)
	item := block(2)
	item.MinSpace = 2
	a := drop(t, s, item, hittest.Point{X: 10, Y: 10})

	clamps, err := s.ResizeStart(context.Background(), a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if clamps.MinLeft != 0 || clamps.MinRight != 0 {
		t.Errorf("min clamps = %v/%v, want 0/0", clamps.MinLeft, clamps.MinRight)
	}
}

func TestResizeGrowRight(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(4), hittest.Point{X: 10, Y: 10})
	ctx := context.Background()

	if _, err := s.ResizeStart(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	area, ok := s.ResizeMove(right(200, 0))
	if !ok {
		t.Fatal("ResizeMove() ok = false")
	}
	if area.StartCol != 0 || area.EndCol != 5 || area.Conflict {
		t.Errorf("area = %+v, want 0..5 without conflict", area)
	}
	if area.AreaBox.Width != 600 {
		t.Errorf("AreaBox.Width = %v, want 600", area.AreaBox.Width)
	}
	if got := s.Snapshot().Phase; got != PhaseGrowingRight {
		t.Errorf("Phase = %q, want %q", got, PhaseGrowingRight)
	}

	committed, err := s.ResizeEnd(ctx)
	if err != nil || !committed {
		t.Fatalf("ResizeEnd() = %v, %v; want committed", committed, err)
	}
	it := itemOf(t, s, a.ID)
	if it.End != 5 || it.Space != 6 {
		t.Errorf("item = %d..%d space %d, want 0..5 space 6", it.Start, it.End, it.Space)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5}, filled(s.State().Rows[0])); diff != "" {
		t.Errorf("filled cols mismatch (-want +got):\n%s", diff)
	}
	if s.Resizing() || s.SelectedArea() != nil {
		t.Error("resize state not cleared")
	}
	if sel := s.Selection(); sel == nil || sel.ComponentID != a.ID {
		t.Errorf("Selection() after resize = %+v, want %s", sel, a.ID)
	}
}

func TestResizeSnapsToNearestBoundary(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(4), hittest.Point{X: 10, Y: 10})
	if _, err := s.ResizeStart(context.Background(), a.ID); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		ev      ResizeEvent
		wantEnd int
		wantOK  bool
	}{
		{"less than half a column", right(40, 0), 3, false},
		{"more than half a column", right(60, 40), 4, true},
		{"exact boundary", right(200, 60), 5, true},
		{"back to start", right(0, 200), 3, true},
		{"shrink less than half", right(-30, 0), 3, false},
		{"shrink more than half", right(-70, -30), 2, true},
	}
	for _, tt := range tests {
		area, ok := s.ResizeMove(tt.ev)
		if ok != tt.wantOK || area.EndCol != tt.wantEnd {
			t.Errorf("%s: ResizeMove() = end %d, %v; want end %d, %v", tt.name, area.EndCol, ok, tt.wantEnd, tt.wantOK)
		}
	}
}

func TestResizeEndUnchangedIsNoop(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(4), hittest.Point{X: 10, Y: 10})
	ctx := context.Background()
	before := s.State()

	if _, err := s.ResizeStart(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	s.ResizeMove(right(200, 0))
	s.ResizeMove(right(10, 200))

	committed, err := s.ResizeEnd(ctx)
	if err != nil || committed {
		t.Fatalf("ResizeEnd() = %v, %v; want no commit", committed, err)
	}
	after := s.State()
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
	if &after.Rows[0] != &before.Rows[0] || &after.Groups[0] != &before.Groups[0] {
		t.Error("state replaced by a no-op resize")
	}
}

func TestResizeConflict(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(4), hittest.Point{X: 10, Y: 10})
	drop(t, s, block(2), hittest.Point{X: 650, Y: 10})
	ctx := context.Background()
	before := s.State()

	if _, err := s.ResizeStart(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	area, ok := s.ResizeMove(right(300, 0))
	if !ok || !area.Conflict {
		t.Fatalf("ResizeMove() = %+v, %v; want a conflicting preview", area, ok)
	}
	area, ok = s.ResizeMove(right(200, 300))
	if !ok || area.Conflict {
		t.Fatalf("ResizeMove() = %+v, %v; want a free preview", area, ok)
	}
	area, _ = s.ResizeMove(right(300, 200))
	if !area.Conflict {
		t.Fatal("expected conflict")
	}

	committed, err := s.ResizeEnd(ctx)
	if err != nil || committed {
		t.Fatalf("ResizeEnd() = %v, %v; want no commit", committed, err)
	}
	if diff := cmp.Diff(before, s.State()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
}

func TestResizeShrinkRight(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(4), hittest.Point{X: 10, Y: 10})
	ctx := context.Background()

	if _, err := s.ResizeStart(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	area, ok := s.ResizeMove(right(-200, 0))
	if !ok || area.EndCol != 1 || area.Conflict {
		t.Fatalf("ResizeMove() = %+v, %v", area, ok)
	}
	if got := s.Snapshot().Phase; got != PhaseShrinkingRight {
		t.Errorf("Phase = %q, want %q", got, PhaseShrinkingRight)
	}
	if committed, _ := s.ResizeEnd(ctx); !committed {
		t.Fatal("ResizeEnd() committed = false")
	}

	it := itemOf(t, s, a.ID)
	if it.End != 1 || it.Space != 2 {
		t.Errorf("item = %d..%d space %d, want 0..1 space 2", it.Start, it.End, it.Space)
	}
	if diff := cmp.Diff([]int{0, 1}, filled(s.State().Rows[0])); diff != "" {
		t.Errorf("filled cols mismatch (-want +got):\n%s", diff)
	}
}

func TestResizeGrowLeft(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(4), hittest.Point{X: 410, Y: 10})
	ctx := context.Background()

	if _, err := s.ResizeStart(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	area, ok := s.ResizeMove(left(200, 0))
	if !ok || area.StartCol != 2 || area.EndCol != 7 {
		t.Fatalf("ResizeMove() = %+v, %v; want 2..7", area, ok)
	}
	if area.AreaBox.Left != 200 {
		t.Errorf("AreaBox.Left = %v, want 200", area.AreaBox.Left)
	}
	if got := s.Snapshot().Phase; got != PhaseGrowingLeft {
		t.Errorf("Phase = %q, want %q", got, PhaseGrowingLeft)
	}
	if committed, _ := s.ResizeEnd(ctx); !committed {
		t.Fatal("ResizeEnd() committed = false")
	}
	if it := itemOf(t, s, a.ID); it.Start != 2 || it.End != 7 {
		t.Errorf("item = %d..%d, want 2..7", it.Start, it.End)
	}
}

func TestResizeMoveRejected(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(4), hittest.Point{X: 10, Y: 10})
	if _, err := s.ResizeStart(context.Background(), a.ID); err != nil {
		t.Fatal(err)
	}
	initial := *s.SelectedArea()

	tests := []struct {
		name string
		ev   ResizeEvent
	}{
		{"beyond max right", right(900, 0)},
		{"beyond max left", left(10, 0)},
		{"beyond min right", right(-301, 0)},
		{"unknown direction", ResizeEvent{Direction: "up", Position: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			area, ok := s.ResizeMove(tt.ev)
			if ok {
				t.Fatal("ResizeMove() ok = true")
			}
			if diff := cmp.Diff(initial, area); diff != "" {
				t.Errorf("preview changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResizeRejectedMoveKeepsPhase(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(4), hittest.Point{X: 10, Y: 10})
	if _, err := s.ResizeStart(context.Background(), a.ID); err != nil {
		t.Fatal(err)
	}

	// Less than half a column snaps back to the original span.
	if _, ok := s.ResizeMove(right(20, 0)); ok {
		t.Fatal("ResizeMove() ok = true for a move within the column")
	}
	if got := s.Snapshot().Phase; got != PhaseIdle {
		t.Errorf("Phase after rejected move = %q, want %q", got, PhaseIdle)
	}

	if _, ok := s.ResizeMove(right(200, 20)); !ok {
		t.Fatal("ResizeMove() ok = false")
	}
	if _, ok := s.ResizeMove(right(180, 200)); ok {
		t.Fatal("ResizeMove() ok = true for a move within the column")
	}
	if got := s.Snapshot().Phase; got != PhaseGrowingRight {
		t.Errorf("Phase after rejected move = %q, want %q", got, PhaseGrowingRight)
	}
}

func TestResizeEndStaleComponent(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(4), hittest.Point{X: 10, Y: 10})
	ctx := context.Background()
	if _, err := s.ResizeStart(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.ResizeMove(right(200, 0)); !ok {
		t.Fatal("ResizeMove() ok = false")
	}
	before := grid.Clone(s.State().Rows)
	delete(s.state.ComponentsInfo, a.ID)

	committed, err := s.ResizeEnd(ctx)
	if committed || !errors.Is(err, errors.ErrCodeComponentNotFound) {
		t.Fatalf("ResizeEnd() = %v, %v; want COMPONENT_NOT_FOUND", committed, err)
	}
	if diff := cmp.Diff(before, s.State().Rows); diff != "" {
		t.Errorf("rows changed (-before +after):\n%s", diff)
	}
	if s.Resizing() {
		t.Error("resize state not cleared")
	}
}

func TestResizeInvertedSpanRejected(t *testing.T) {
	s := newSession(t, 1)
	item := block(1)
	a := drop(t, s, item, hittest.Point{X: 10, Y: 10})
	if _, err := s.ResizeStart(context.Background(), a.ID); err != nil {
		t.Fatal(err)
	}
	// Space equals MinSpace, so any shrink is outside the clamps.
	if _, ok := s.ResizeMove(right(-60, 0)); ok {
		t.Error("ResizeMove() shrinking below one column ok = true")
	}
}

func TestResizeWithoutStart(t *testing.T) {
	s := newSession(t, 1)
	if _, ok := s.ResizeMove(right(10, 0)); ok {
		t.Error("ResizeMove() without start ok = true")
	}
	if _, err := s.ResizeEnd(context.Background()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ResizeEnd() error = %v, want INVALID_INPUT", err)
	}
}

func TestResizeStartErrors(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(2), hittest.Point{X: 10, Y: 10})
	ctx := context.Background()

	if _, err := s.ResizeStart(ctx, "missing"); !errors.Is(err, errors.ErrCodeComponentNotFound) {
		t.Errorf("ResizeStart(missing) error = %v, want COMPONENT_NOT_FOUND", err)
	}

	_ = s.DragEnter()
	if _, err := s.ResizeStart(ctx, a.ID); !errors.Is(err, errors.ErrCodeBusy) {
		t.Errorf("ResizeStart() while dragging error = %v, want BUSY", err)
	}
	s.DragEnd()

	if _, err := s.ResizeStart(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DragEnter(); !errors.Is(err, errors.ErrCodeBusy) {
		t.Errorf("DragEnter() while resizing error = %v, want BUSY", err)
	}
	if got := s.DragOver(block(1), hittest.Point{X: 10, Y: 10}); got != nil {
		t.Error("DragOver() while resizing should be ignored")
	}
}

func TestResizeFixedLayout(t *testing.T) {
	s := newSession(t, 1)
	fixed := block(3)
	fixed.LayoutMode = design.LayoutFixed
	a := drop(t, s, fixed, hittest.Point{X: 10, Y: 10})
	b := drop(t, s, block(2), hittest.Point{X: 850, Y: 10})
	ctx := context.Background()

	if _, err := s.ResizeStart(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	area, ok := s.ResizeMove(right(50, 0))
	if !ok || area.AreaBox.Width != 350 || area.EndCol != 3 {
		t.Fatalf("ResizeMove() = %+v, %v; want width 350 ending in col 3", area, ok)
	}
	if _, ok := s.ResizeMove(right(50, 50)); ok {
		t.Error("ResizeMove() at an unchanged position ok = true")
	}
	if committed, err := s.ResizeEnd(ctx); err != nil || !committed {
		t.Fatalf("ResizeEnd() = %v, %v", committed, err)
	}

	rows := s.State().Rows
	if err := grid.Validate(rows, 1200); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if len(rows[0].Cols) != 13 {
		t.Errorf("len(Cols) = %d, want 13 after split", len(rows[0].Cols))
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3, 9, 10}, filled(rows[0])); diff != "" {
		t.Errorf("filled cols mismatch (-want +got):\n%s", diff)
	}

	ia := itemOf(t, s, a.ID)
	if ia.Start != 0 || ia.End != 3 || ia.Width != 350 || ia.Left != 0 {
		t.Errorf("fixed item = %+v", ia)
	}
	if ib := itemOf(t, s, b.ID); ib.Start != 9 || ib.End != 10 {
		t.Errorf("item right of split = %d..%d, want 9..10", ib.Start, ib.End)
	}
}

func TestResizeFixedShrinkWithinColumn(t *testing.T) {
	s := newSession(t, 1)
	fixed := block(3)
	fixed.LayoutMode = design.LayoutFixed
	a := drop(t, s, fixed, hittest.Point{X: 10, Y: 10})
	ctx := context.Background()

	if _, err := s.ResizeStart(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	area, ok := s.ResizeMove(right(-30, 0))
	if !ok || area.EndCol != 2 || area.AreaBox.Width != 270 {
		t.Fatalf("ResizeMove() = %+v, %v", area, ok)
	}
	if committed, _ := s.ResizeEnd(ctx); !committed {
		t.Fatal("ResizeEnd() committed = false")
	}
	row := s.State().Rows[0]
	if got := row.ColLeft(3); got != 270 {
		t.Errorf("split boundary = %v, want 270", got)
	}
	if row.Cols[3].Filled {
		t.Error("column freed by the shrink is still filled")
	}
}
