package interaction

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridcanvas/pkg/config"
	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/grid"
	"github.com/matzehuels/gridcanvas/pkg/grid/hittest"
)

func newSession(t *testing.T, rows int) *Session {
	t.Helper()
	cfg := config.Default().Grid
	cfg.DefaultNumberOfRows = rows
	n := 0
	s, err := New(cfg, Options{
		Logger: log.New(io.Discard),
		NewID: func() string {
			n++
			return fmt.Sprintf("c%d", n)
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func block(cols int) DragItem {
	return DragItem{Name: "block", Size: Size{Width: float64(cols) * 100, Height: 100}, ConsumedRows: 1, ConsumedCols: cols}
}

func drop(t *testing.T, s *Session, item DragItem, at hittest.Point) design.Component {
	t.Helper()
	if err := s.DragEnter(); err != nil {
		t.Fatalf("DragEnter() error = %v", err)
	}
	if area := s.DragOver(item, at); area == nil {
		t.Fatalf("DragOver(%v) = nil", at)
	}
	comp, ok := s.Drop(context.Background(), item)
	if !ok {
		t.Fatalf("Drop(%v) ok = false", at)
	}
	if err := grid.Validate(s.State().Rows, s.Config().BaseWidth); err != nil {
		t.Fatalf("Validate() after drop = %v", err)
	}
	return comp
}

func filled(r grid.Row) []int {
	var out []int
	for _, c := range r.Cols {
		if c.Filled {
			out = append(out, c.Index)
		}
	}
	return out
}

func TestNewSession(t *testing.T) {
	s := newSession(t, 1)
	rows := s.State().Rows
	if len(rows) != 1 || !rows[0].Placeholder || len(rows[0].Cols) != 12 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Height != 100 || rows[0].Cols[0].Width != 100 {
		t.Errorf("row 0 = height %v, col width %v", rows[0].Height, rows[0].Cols[0].Width)
	}
}

func TestNewSessionInvalidConfig(t *testing.T) {
	cfg := config.Default().Grid
	cfg.DefaultNumberOfCols = 0
	if _, err := New(cfg, Options{}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("New() error = %v, want INVALID_CONFIG", err)
	}
}

func TestDropOnEmptyRow(t *testing.T) {
	s := newSession(t, 1)
	if err := s.DragEnter(); err != nil {
		t.Fatal(err)
	}
	area := s.DragOver(block(4), hittest.Point{X: 10, Y: 10})
	if area == nil {
		t.Fatal("DragOver() = nil")
	}
	if area.StartCol != 0 || area.EndCol != 3 || area.Conflict || !area.Filled {
		t.Errorf("area = %+v, want 0..3 filled without conflict", *area)
	}

	comp, ok := s.Drop(context.Background(), block(4))
	if !ok {
		t.Fatal("Drop() ok = false")
	}
	st := s.State()
	if diff := cmp.Diff([]int{0, 1, 2, 3}, filled(st.Rows[0])); diff != "" {
		t.Errorf("filled cols mismatch (-want +got):\n%s", diff)
	}
	if len(st.Rows) != 2 || !st.Rows[1].Placeholder {
		t.Error("a new placeholder row should follow the occupied row")
	}
	if sel := s.Selection(); sel == nil || sel.ComponentID != comp.ID {
		t.Errorf("Selection() = %+v, want %s", sel, comp.ID)
	}
	if s.SelectedArea() != nil {
		t.Error("SelectedArea() should be cleared after drop")
	}
	if got := st.ComponentsInfo[comp.ID].RowIndex; got != 0 {
		t.Errorf("RowIndex = %d, want 0", got)
	}
	it := st.Groups[st.RowsToGroups[0]].Items[0]
	if it.Start != 0 || it.End != 3 || it.Space != 4 || it.MinSpace != 1 {
		t.Errorf("item = %+v", it)
	}
}

func TestDropConflictLeavesDesignUnchanged(t *testing.T) {
	s := newSession(t, 1)
	drop(t, s, block(4), hittest.Point{X: 10, Y: 10})
	before := s.State()

	if err := s.DragEnter(); err != nil {
		t.Fatal(err)
	}
	area := s.DragOver(block(4), hittest.Point{X: 250, Y: 10})
	if area == nil || !area.Conflict {
		t.Fatalf("DragOver() = %+v, want conflict", area)
	}
	if _, ok := s.Drop(context.Background(), block(4)); ok {
		t.Fatal("Drop() ok = true on a conflicting area")
	}
	if diff := cmp.Diff(before, s.State()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
	if &s.State().Rows[0] != &before.Rows[0] {
		t.Error("rows replaced by a rejected drop")
	}
}

func TestDropWithoutArea(t *testing.T) {
	s := newSession(t, 1)
	before := s.State()
	if _, ok := s.Drop(context.Background(), block(2)); ok {
		t.Error("Drop() without preview ok = true")
	}
	if diff := cmp.Diff(before, s.State()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
}

func TestDropNotFilled(t *testing.T) {
	s := newSession(t, 1)
	_ = s.DragEnter()
	area := s.DragOver(block(4), hittest.Point{X: 1050, Y: 10})
	if area == nil || area.Filled {
		t.Fatalf("DragOver() = %+v, want area not filled", area)
	}
	if _, ok := s.Drop(context.Background(), block(4)); ok {
		t.Error("Drop() ok = true for an area past the row end")
	}
}

func TestDragOverMemo(t *testing.T) {
	s := newSession(t, 1)
	_ = s.DragEnter()

	a := s.DragOver(block(2), hittest.Point{X: 120, Y: 10})
	b := s.DragOver(block(2), hittest.Point{X: 120, Y: 10})
	if a == nil || a != b {
		t.Fatal("DragOver() at the same offset should return the memoized area")
	}
	c := s.DragOver(block(2), hittest.Point{X: 320, Y: 10})
	if c == a || c.StartCol != 3 {
		t.Errorf("DragOver() at a new offset = %+v, want recomputed area at col 3", c)
	}

	s.DragLeave()
	if s.SelectedArea() != nil {
		t.Error("DragLeave() should clear the preview")
	}
	_ = s.DragEnter()
	if d := s.DragOver(block(2), hittest.Point{X: 320, Y: 10}); d == c {
		t.Error("memo should be invalidated by DragLeave/DragEnter")
	}
}

func TestDragOverOutsideGrid(t *testing.T) {
	s := newSession(t, 1)
	_ = s.DragEnter()
	prev := s.DragOver(block(2), hittest.Point{X: 10, Y: 10})

	if got := s.DragOver(block(2), hittest.Point{X: 10, Y: 500}); got != nil {
		t.Errorf("DragOver() outside = %+v, want nil", got)
	}
	if s.SelectedArea() != prev {
		t.Error("preview should be kept when the pointer is outside the grid")
	}

	s.DragEnd()
	if s.SelectedArea() != nil {
		t.Error("DragEnd() should clear the preview")
	}
}

func TestDropSplitsRowAndRepairsIndices(t *testing.T) {
	s := newSession(t, 2)
	a := drop(t, s, block(2), hittest.Point{X: 10, Y: 150})

	short := block(3)
	short.Size.Height = 40
	drop(t, s, short, hittest.Point{X: 10, Y: 10})

	st := s.State()
	heights := make([]float64, len(st.Rows))
	for i, r := range st.Rows {
		heights[i] = r.Height
	}
	if diff := cmp.Diff([]float64{40, 60, 100, 100}, heights); diff != "" {
		t.Errorf("heights mismatch (-want +got):\n%s", diff)
	}
	if got := st.ComponentsInfo[a.ID].RowIndex; got != 2 {
		t.Errorf("RowIndex of first component = %d, want 2", got)
	}
	if _, ok := st.RowsToGroups[1]; ok {
		t.Error("stale RowsToGroups key 1 kept")
	}
	if _, err := s.ResizeStart(context.Background(), a.ID); err != nil {
		t.Errorf("ResizeStart() after reindex error = %v", err)
	}
}

func TestDropMergesEmptyRowsAbove(t *testing.T) {
	s := newSession(t, 4)
	a := drop(t, s, block(4), hittest.Point{X: 10, Y: 250})

	st := s.State()
	heights := make([]float64, len(st.Rows))
	for i, r := range st.Rows {
		heights[i] = r.Height
	}
	if diff := cmp.Diff([]float64{200, 100, 100}, heights); diff != "" {
		t.Errorf("heights mismatch (-want +got):\n%s", diff)
	}
	if got := st.ComponentsInfo[a.ID].RowIndex; got != 1 {
		t.Errorf("RowIndex = %d, want 1", got)
	}
	if _, ok := st.RowsToGroups[1]; !ok {
		t.Error("RowsToGroups should map the filled row 1")
	}
}

func TestClickAndClearSelection(t *testing.T) {
	s := newSession(t, 1)
	a := drop(t, s, block(2), hittest.Point{X: 10, Y: 10})
	b := drop(t, s, block(2), hittest.Point{X: 510, Y: 10})

	if sel, ok := s.Click(a.ID); !ok || sel.ComponentID != a.ID {
		t.Errorf("Click(a) = %+v, %v", sel, ok)
	}
	first := s.Selection()
	if sel, _ := s.Click(a.ID); sel != first {
		t.Error("clicking the selected component should keep the selection")
	}
	if sel, ok := s.Click("missing"); ok || sel.ComponentID != a.ID {
		t.Errorf("Click(missing) = %+v, %v; want unchanged selection", sel, ok)
	}
	if sel, ok := s.Click(b.ID); !ok || sel.ComponentID != b.ID {
		t.Errorf("Click(b) = %+v, %v", sel, ok)
	}
	s.ClearSelection()
	if s.Selection() != nil {
		t.Error("ClearSelection() kept the selection")
	}
}

func TestSnapshot(t *testing.T) {
	s := newSession(t, 1)
	drop(t, s, block(2), hittest.Point{X: 10, Y: 10})
	_ = s.DragEnter()
	s.DragOver(block(2), hittest.Point{X: 510, Y: 10})

	snap := s.Snapshot()
	if !snap.Dragging || snap.Resizing || snap.Phase != PhaseIdle {
		t.Errorf("snapshot flags = %+v", snap)
	}
	if snap.SelectedArea == nil || snap.SelectedArea.StartCol != 5 {
		t.Errorf("SelectedArea = %+v", snap.SelectedArea)
	}
	if snap.TotalHeight != 200 {
		t.Errorf("TotalHeight = %v, want 200", snap.TotalHeight)
	}
}
