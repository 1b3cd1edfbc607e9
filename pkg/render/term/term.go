package term

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/grid"
	"github.com/matzehuels/gridcanvas/pkg/interaction"
)

const (
	defaultPxPerChar = 25
	defaultPxPerLine = 50
)

const (
	glyphEmpty       = '·'
	glyphPlaceholder = '░'
	glyphDrop        = '+'
	glyphConflict    = 'x'
	glyphUnknown     = '?'
)

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// itemColors cycle over the items of a row so neighbours stay apart.
var itemColors = []lipgloss.Color{colorCyan, colorBlue, colorYellow}

var (
	styleGutter      = lipgloss.NewStyle().Foreground(colorDim)
	styleEmpty       = lipgloss.NewStyle().Foreground(colorDim)
	stylePlaceholder = lipgloss.NewStyle().Foreground(colorDim)
	styleSelected    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleDrop        = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleConflict    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder      = lipgloss.NewStyle().Foreground(colorDim)
)

// Options configures [Canvas].
type Options struct {
	// PxPerChar is the canvas width represented by one character. Zero uses 25.
	PxPerChar float64
	// PxPerLine is the row height represented by one line. Zero uses 50.
	PxPerLine float64
	// Plain disables all styling.
	Plain bool
}

func (o Options) withDefaults() Options {
	if o.PxPerChar <= 0 {
		o.PxPerChar = defaultPxPerChar
	}
	if o.PxPerLine <= 0 {
		o.PxPerLine = defaultPxPerLine
	}
	return o
}

func (o Options) paint(style lipgloss.Style, s string) string {
	if o.Plain {
		return s
	}
	return style.Render(s)
}

// Canvas draws the grid of snap as text, one line per PxPerLine pixels of
// row height (at least one line per row).
func Canvas(snap interaction.Snapshot, opts Options) string {
	opts = opts.withDefaults()

	var b strings.Builder
	for _, row := range snap.State.Rows {
		cells := renderCells(snap, row, opts)
		lines := max(1, int(math.Round(row.Height/opts.PxPerLine)))
		for i := range lines {
			gutter := "   │"
			if i == 0 {
				gutter = fmt.Sprintf("%2d │", row.Index)
			}
			b.WriteString(opts.paint(styleGutter, gutter))
			b.WriteString(cells)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderCells(snap interaction.Snapshot, row grid.Row, opts Options) string {
	var b strings.Builder
	var left float64
	for c, col := range row.Cols {
		right := left + col.Width
		n := int(math.Round(right/opts.PxPerChar)) - int(math.Round(left/opts.PxPerChar))
		left = right
		if n <= 0 {
			continue
		}
		glyph, style := cellGlyph(snap, row, c)
		b.WriteString(opts.paint(style, strings.Repeat(string(glyph), n)))
	}
	return b.String()
}

func cellGlyph(snap interaction.Snapshot, row grid.Row, col int) (rune, lipgloss.Style) {
	if a := snap.SelectedArea; a != nil && a.Row == row.Index && col >= a.StartCol && col <= a.EndCol {
		if a.Conflict {
			return glyphConflict, styleConflict
		}
		return glyphDrop, styleDrop
	}

	if !row.Cols[col].Filled {
		if row.Placeholder {
			return glyphPlaceholder, stylePlaceholder
		}
		return glyphEmpty, styleEmpty
	}

	st := snap.State
	item, ok := design.ItemAt(st.RowsToGroups, st.Groups, row.Index, col)
	if !ok || len(item.Components) == 0 {
		return glyphUnknown, styleConflict
	}
	r := label(item.Components[0].Type)
	if sel := snap.Selection; sel != nil && sel.ComponentID == item.ComponentID() {
		return unicode.ToUpper(r), styleSelected
	}
	return r, lipgloss.NewStyle().Foreground(itemColors[itemOrdinal(st, row.Index, item)%len(itemColors)])
}

func label(componentType string) rune {
	r, _ := utf8.DecodeRuneInString(componentType)
	if r == utf8.RuneError {
		return glyphUnknown
	}
	return unicode.ToLower(r)
}

func itemOrdinal(st design.State, row int, item design.Item) int {
	g, ok := st.RowsToGroups[row]
	if !ok || g < 0 || g >= len(st.Groups) {
		return 0
	}
	for i, it := range st.Groups[g].Items {
		if it.Start == item.Start {
			return i
		}
	}
	return 0
}

// =============================================================================
// Index Tables
// =============================================================================

// Components renders one table line per placed component, ordered by row
// and start column.
func Components(snap interaction.Snapshot) string {
	type line struct {
		row  int
		item design.Item
		c    design.Component
	}
	var lines []line
	st := snap.State
	for row, g := range st.RowsToGroups {
		if g < 0 || g >= len(st.Groups) {
			continue
		}
		for _, it := range st.Groups[g].Items {
			for _, c := range it.Components {
				lines = append(lines, line{row: row, item: it, c: c})
			}
		}
	}
	slices.SortFunc(lines, func(a, b line) int {
		if a.row != b.row {
			return a.row - b.row
		}
		return a.item.Start - b.item.Start
	})

	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		info, indexed := st.ComponentsInfo[l.c.ID]
		indexedRow := "—"
		if indexed {
			indexedRow = strconv.Itoa(info.RowIndex)
		}
		rows = append(rows, []string{
			l.c.ID,
			l.c.Type,
			strconv.Itoa(l.row),
			indexedRow,
			fmt.Sprintf("%d–%d", l.item.Start, l.item.End),
			fmt.Sprintf("%d/%d", l.item.Space, l.item.MinSpace),
			string(l.item.LayoutMode),
		})
	}

	selected := ""
	if snap.Selection != nil {
		selected = snap.Selection.ComponentID
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("ID", "Type", "Row", "Indexed", "Cols", "Space", "Mode").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if row >= 0 && row < len(lines) && lines[row].c.ID == selected {
				return styleSelected
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// Rows renders one table line per grid row with its height, column count,
// filled columns and hosted group.
func Rows(snap interaction.Snapshot) string {
	st := snap.State
	rows := make([][]string, 0, len(st.Rows))
	for _, r := range st.Rows {
		var filled int
		for _, c := range r.Cols {
			if c.Filled {
				filled++
			}
		}
		group := "—"
		if g, ok := st.RowsToGroups[r.Index]; ok {
			group = strconv.Itoa(g)
		}
		kind := ""
		if r.Placeholder {
			kind = "placeholder"
		}
		rows = append(rows, []string{
			strconv.Itoa(r.Index),
			strconv.FormatFloat(r.Height, 'f', -1, 64),
			strconv.Itoa(len(r.Cols)),
			strconv.Itoa(filled),
			group,
			kind,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Row", "Height", "Cols", "Filled", "Group", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if row >= 0 && row < len(st.Rows) && st.Rows[row].Placeholder {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
