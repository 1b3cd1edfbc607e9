package interaction

import (
	"context"
	"math"

	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/grid"
	"github.com/matzehuels/gridcanvas/pkg/grid/hittest"
	"github.com/matzehuels/gridcanvas/pkg/grid/projection"
	"github.com/matzehuels/gridcanvas/pkg/observability"
)

// DragEnter starts a drag over the canvas. Any previous preview is dropped.
func (s *Session) DragEnter() error {
	if s.isResizing {
		return s.busy("drag enter")
	}
	s.dragging = true
	s.area = nil
	s.hover = hoverMemo{}
	return nil
}

// DragOver previews item with its first column under offset and returns the
// projected area. The result for the last offset is memoized, so repeated
// events at the same position do not recompute. It returns nil when offset
// is outside the grid or a resize is in progress; the previous preview is
// kept in that case.
func (s *Session) DragOver(item DragItem, offset hittest.Point) *projection.SelectedArea {
	if s.isResizing {
		return nil
	}
	s.dragging = true
	if s.hover.valid && s.hover.offset == offset && s.hover.item == item.Name {
		return s.hover.area
	}

	var result *projection.SelectedArea
	if info, ok := hittest.Locate(s.state.Rows, s.origin, offset); ok {
		area := projection.FindProjectedFilledArea(s.state.Rows, info, item.ConsumedRows, item.ConsumedCols)
		result = &area
		s.area = result
	}
	s.hover = hoverMemo{valid: true, offset: offset, item: item.Name, area: result}
	return result
}

// DragLeave clears the preview when the pointer leaves the canvas.
func (s *Session) DragLeave() {
	s.dragging = false
	s.area = nil
	s.hover = hoverMemo{}
}

// DragEnd clears the preview when the drag finishes without a drop.
func (s *Session) DragEnd() {
	s.DragLeave()
}

// Drop commits item at the previewed area and selects the new component.
//
// Nothing is changed when there is no preview, the preview does not fit in
// its row or it conflicts with placed items; Drop then returns false. The
// drag ends either way.
func (s *Session) Drop(ctx context.Context, item DragItem) (design.Component, bool) {
	area := s.area
	s.DragLeave()

	if area == nil || !area.Droppable() {
		s.logger.Debug("drop rejected", "item", item.Name, "area", area != nil)
		observability.Session().OnDrop(ctx, item.Name, false)
		return design.Component{}, false
	}

	height := item.Size.Height
	if height <= 0 {
		height = s.cfg.DefaultRowHeight
	}

	var rx design.Reindexer
	res, ok := grid.UpdateRows(s.state.Rows, grid.Update{
		Current:             area.Span(height),
		DefaultRowHeight:    s.cfg.DefaultRowHeight,
		DefaultNumberOfCols: s.cfg.DefaultNumberOfCols,
		TotalWidth:          s.cfg.BaseWidth,
		OnRowIndexChange:    rx.OnRowIndexChange,
	})
	if !ok {
		s.logger.Warn("drop area no longer matches the grid", "row", area.Row, "start", area.StartCol, "end", area.EndCol)
		observability.Session().OnDrop(ctx, item.Name, false)
		return design.Component{}, false
	}
	rowsToGroups, info := rx.Apply(s.state.RowsToGroups, s.state.ComponentsInfo, s.state.Groups)

	added, ok := design.AddComponent(design.ComponentSpec{Type: item.Name, Props: item.Props}, design.AddContext{
		Rows:           res.Rows,
		Groups:         s.state.Groups,
		RowsToGroups:   rowsToGroups,
		ComponentsInfo: info,
		ReferenceRow:   res.UpdatedBaseRow.Index,
		FromCol:        design.ColRange{Start: res.Current.StartCol, End: res.Current.EndCol},
		Space:          s.space(area.AreaBox.Width),
		MinSpace:       item.MinSpace,
		LayoutMode:     item.LayoutMode,
		Left:           s.rowLeft(area.AreaBox.Left),
		Width:          area.AreaBox.Width,
		NewID:          s.newID,
	})
	if !ok {
		s.logger.Warn("updated rows lost the drop columns", "item", item.Name, "row", res.UpdatedBaseRow.Index)
		observability.Session().OnDrop(ctx, item.Name, false)
		return design.Component{}, false
	}

	s.state = design.State{
		Rows:           res.Rows,
		Groups:         added.Groups,
		RowsToGroups:   added.RowsToGroups,
		ComponentsInfo: added.ComponentsInfo,
	}
	s.selection = design.SelectComponent(added.NewComponent.ID, added.ComponentsInfo)

	s.logger.Debug("component dropped",
		"component", added.NewComponent.ID,
		"type", item.Name,
		"row", res.UpdatedBaseRow.Index,
		"start", res.Current.StartCol,
		"end", res.Current.EndCol)
	observability.Session().OnDrop(ctx, item.Name, true)
	return added.NewComponent, true
}

// space converts a pixel width into base columns, never less than one.
func (s *Session) space(width float64) int {
	unit := s.cfg.ColWidth()
	if unit <= 0 {
		return 1
	}
	return max(int(math.Round(width/unit)), 1)
}
