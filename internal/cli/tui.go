package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/grid/hittest"
	"github.com/matzehuels/gridcanvas/pkg/interaction"
	"github.com/matzehuels/gridcanvas/pkg/palette"
	"github.com/matzehuels/gridcanvas/pkg/render/term"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DesignModel - Interactive canvas editing
// =============================================================================

// DesignModel is the bubbletea model for editing a design with the keyboard.
//
// A pointer moves over the canvas one base column at a time and previews
// the current palette item below it. Resizing moves the chosen edge of the
// selected component one base column per key press.
type DesignModel struct {
	Session *interaction.Session
	Palette *palette.Palette
	// Item is the palette index of the item under the pointer.
	Item int
	// Row and X locate the pointer: a row index and a pixel offset from
	// the left edge of the grid.
	Row int
	X   float64
	// Status is the outcome of the last action.
	Status string
	Plain  bool

	ctx       context.Context
	resizing  bool
	direction interaction.Direction
	position  float64
	clamps    interaction.Clamps
}

// NewDesignModel creates a design model over session with the pointer in
// the first column.
func NewDesignModel(ctx context.Context, session *interaction.Session, pal *palette.Palette, plain bool) DesignModel {
	m := DesignModel{
		Session: session,
		Palette: pal,
		X:       session.Config().ColWidth() / 2,
		Plain:   plain,
		ctx:     ctx,
	}
	m.preview()
	return m
}

func (m DesignModel) Init() tea.Cmd {
	return nil
}

func (m DesignModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.resizing {
		return m.updateResize(key.String())
	}

	step := m.Session.Config().ColWidth()
	switch key.String() {
	case "q", "ctrl+c":
		m.Session.DragLeave()
		return m, tea.Quit
	case "esc":
		m.Session.ClearSelection()
		m.Status = "selection cleared"
	case "up", "k":
		if m.Row > 0 {
			m.Row--
		}
	case "down", "j":
		if m.Row < len(m.Session.State().Rows)-1 {
			m.Row++
		}
	case "left", "h":
		if m.X-step >= 0 {
			m.X -= step
		}
	case "right", "l":
		if m.X+step < m.Session.Config().BaseWidth {
			m.X += step
		}
	case "tab":
		m.Item = (m.Item + 1) % len(m.Palette.Items)
	case "shift+tab":
		m.Item = (m.Item + len(m.Palette.Items) - 1) % len(m.Palette.Items)
	case "enter", " ":
		m.drop()
	case "s":
		m.selectAtPointer()
	case "r":
		m.startResize()
		if m.resizing {
			return m, nil
		}
	}
	m.preview()
	return m, nil
}

func (m DesignModel) updateResize(key string) (tea.Model, tea.Cmd) {
	step := m.Session.Config().ColWidth()
	switch key {
	case "ctrl+c", "q":
		m.cancelResize()
		return m, tea.Quit
	case "esc":
		m.cancelResize()
		m.Status = "resize canceled"
	case "tab":
		m.direction = other(m.direction)
		m.move(0)
	case "left", "h":
		if m.direction == interaction.DirectionLeft {
			m.move(m.position + step)
		} else {
			m.move(m.position - step)
		}
	case "right", "l":
		if m.direction == interaction.DirectionRight {
			m.move(m.position + step)
		} else {
			m.move(m.position - step)
		}
	case "enter", " ":
		m.endResize()
	}
	if !m.resizing {
		m.preview()
	}
	return m, nil
}

func (m DesignModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Design"))
	b.WriteString("\n")
	if m.resizing {
		b.WriteString(listDimStyle.Render("←/→ move edge  tab switch edge  ⏎ apply  esc cancel"))
	} else {
		b.WriteString(listDimStyle.Render("arrows move  tab item  ⏎ drop  s select  r resize  esc clear  q quit"))
	}
	b.WriteString("\n\n")

	snap := m.Session.Snapshot()
	b.WriteString(term.Canvas(snap, term.Options{Plain: m.Plain}))
	b.WriteString("\n")

	for i, it := range m.Palette.Items {
		if i == m.Item {
			b.WriteString(listSelectedStyle.Render("▸ " + it.Name))
		} else {
			b.WriteString(listNormalStyle.Render("  " + it.Name))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  row %d · x %gpx", m.Row, m.X)))
	if m.resizing {
		b.WriteString(listDimStyle.Render(fmt.Sprintf(" · %s edge %+gpx · %s", m.direction, m.position, snap.Phase)))
	}
	if m.Status != "" {
		b.WriteString("\n  " + m.Status)
	}
	b.WriteString("\n\n")
	if len(snap.State.ComponentsInfo) > 0 {
		b.WriteString(term.Components(snap))
		b.WriteString("\n")
	}
	b.WriteString(designStats(len(snap.State.Rows), len(snap.State.ComponentsInfo), snap.TotalHeight))

	return b.String()
}

// =============================================================================
// Actions
// =============================================================================

func (m *DesignModel) pointer() hittest.Point {
	rows := m.Session.State().Rows
	if m.Row >= len(rows) {
		m.Row = len(rows) - 1
	}
	origin := m.Session.Origin()
	return hittest.Point{
		X: origin.X + m.X,
		Y: origin.Y + hittest.RowTop(rows, m.Row) + rows[m.Row].Height/2,
	}
}

func (m *DesignModel) item() interaction.DragItem {
	return m.Palette.Items[m.Item].DragItem()
}

// preview shows the current item under the pointer.
func (m *DesignModel) preview() {
	m.Session.DragOver(m.item(), m.pointer())
}

func (m *DesignModel) drop() {
	item := m.item()
	if err := m.Session.DragEnter(); err != nil {
		m.Status = StyleWarning.Render(err.Error())
		return
	}
	m.Session.DragOver(item, m.pointer())
	comp, ok := m.Session.Drop(m.ctx, item)
	if !ok {
		m.Status = StyleWarning.Render(fmt.Sprintf("%s does not fit here", item.Name))
		return
	}
	m.Status = StyleSuccess.Render(fmt.Sprintf("placed %s %s", comp.Type, shortID(comp.ID)))
}

func (m *DesignModel) selectAtPointer() {
	st := m.Session.State()
	info, ok := hittest.Locate(st.Rows, m.Session.Origin(), m.pointer())
	var it design.Item
	if ok {
		it, ok = design.ItemAt(st.RowsToGroups, st.Groups, info.Row, info.Col)
	}
	if !ok {
		m.Session.ClearSelection()
		m.Status = "nothing here"
		return
	}
	if _, ok := m.Session.Click(it.ComponentID()); ok {
		m.Status = fmt.Sprintf("selected %s", shortID(it.ComponentID()))
	}
}

func (m *DesignModel) startResize() {
	sel := m.Session.Selection()
	if sel == nil {
		m.Status = "select a component first"
		return
	}
	m.Session.DragLeave()
	clamps, err := m.Session.ResizeStart(m.ctx, sel.ComponentID)
	if err != nil {
		m.Status = StyleWarning.Render(err.Error())
		return
	}
	m.resizing = true
	m.direction = interaction.DirectionRight
	m.position = 0
	m.clamps = clamps
}

// move sends a resize event placing the edge at position. Positions outside
// the clamps are ignored.
func (m *DesignModel) move(position float64) {
	lo, hi := m.clamps.MinRight, m.clamps.MaxRight
	if m.direction == interaction.DirectionLeft {
		lo, hi = m.clamps.MinLeft, m.clamps.MaxLeft
	}
	if position < lo || position > hi {
		return
	}
	prev := m.position
	m.Session.ResizeMove(interaction.ResizeEvent{Direction: m.direction, Position: position, PrevPosition: prev})
	m.position = position
}

func (m *DesignModel) endResize() {
	committed, err := m.Session.ResizeEnd(m.ctx)
	m.resizing = false
	switch {
	case err != nil:
		m.Status = StyleWarning.Render(err.Error())
	case committed:
		m.Status = StyleSuccess.Render("resized")
	default:
		m.Status = "resize discarded"
	}
}

// cancelResize moves the edge back and ends the resize without a change.
func (m *DesignModel) cancelResize() {
	m.move(0)
	_, _ = m.Session.ResizeEnd(m.ctx)
	m.resizing = false
}

func other(d interaction.Direction) interaction.Direction {
	if d == interaction.DirectionLeft {
		return interaction.DirectionRight
	}
	return interaction.DirectionLeft
}
