package dot

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/interaction"
)

func rowID(i int) string   { return "row:" + strconv.Itoa(i) }
func groupID(i int) string { return "group:" + strconv.Itoa(i) }

// ToDOT converts the design of snap to Graphviz DOT source.
func ToDOT(snap interaction.Snapshot) string {
	st := snap.State
	selected := ""
	if snap.Selection != nil {
		selected = snap.Selection.ComponentID
	}

	var buf bytes.Buffer
	buf.WriteString("digraph design {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, r := range st.Rows {
		label := fmt.Sprintf("row %d\n%gpx, %d cols", r.Index, r.Height, len(r.Cols))
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if r.Placeholder {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", rowID(r.Index), strings.Join(attrs, ", "))
	}

	hosts := make(map[int]int, len(st.RowsToGroups))
	for _, row := range slices.Sorted(maps.Keys(st.RowsToGroups)) {
		hosts[st.RowsToGroups[row]] = row
	}

	for g, group := range st.Groups {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=folder];\n", groupID(g), fmt.Sprintf("group %d", g))
		for _, it := range group.Items {
			for _, c := range it.Components {
				label := fmt.Sprintf("%s\n%s\ncols %d-%d, space %d", c.Type, c.ID, it.Start, it.End, it.Space)
				attrs := []string{fmt.Sprintf("label=%q", label)}
				if c.ID == selected {
					attrs = append(attrs, "penwidth=3")
				}
				fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(attrs, ", "))
			}
		}
	}

	buf.WriteString("\n")
	for _, row := range slices.Sorted(maps.Keys(st.RowsToGroups)) {
		fmt.Fprintf(&buf, "  %q -> %q;\n", rowID(row), groupID(st.RowsToGroups[row]))
	}
	for g, group := range st.Groups {
		for _, it := range group.Items {
			for _, c := range it.Components {
				fmt.Fprintf(&buf, "  %q -> %q;\n", groupID(g), c.ID)
			}
		}
	}
	for _, id := range slices.Sorted(maps.Keys(st.ComponentsInfo)) {
		info := st.ComponentsInfo[id]
		attrs := []string{"style=dashed", "constraint=false"}
		if host, ok := hostRow(st.Groups, hosts, id); !ok || host != info.RowIndex {
			attrs = append(attrs, "color=red")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", id, rowID(info.RowIndex), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// hostRow returns the row whose group holds the component id.
func hostRow(groups []design.Group, hosts map[int]int, id string) (int, bool) {
	for g, group := range groups {
		for _, it := range group.Items {
			if it.ComponentID() == id {
				row, ok := hosts[g]
				return row, ok
			}
		}
	}
	return 0, false
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag so the drawing scales with
// its container and starts at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
