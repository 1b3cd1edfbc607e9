package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridcanvas/pkg/config"
	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/interaction"
	"github.com/matzehuels/gridcanvas/pkg/palette"
)

const layoutScript = `
name = "heading and text"

[[step]]
action = "drop"
item = "heading"
x = 10
y = 10
expect = "ok"

[[step]]
action = "drop"
item = "text"
x = 450
y = 10
expect = "ok"

[[step]]
action = "drop"
item = "heading"
x = 50
y = 10
expect = "rejected"

[[step]]
action = "resize"
component = "#2"
direction = "right"
positions = [50, 100]
expect = "ok"

[[step]]
action = "select"
component = "#1"
expect = "ok"

[[step]]
action = "select"
component = "missing"
expect = "rejected"
`

func newRunner(t *testing.T, s *Script, onStep func(StepResult)) (*Runner, *interaction.Session) {
	t.Helper()
	n := 0
	sess, err := interaction.New(s.GridConfig(config.Default().Grid), interaction.Options{
		Logger: log.New(io.Discard),
		NewID: func() string {
			n++
			return fmt.Sprintf("c%d", n)
		},
	})
	if err != nil {
		t.Fatalf("interaction.New() error = %v", err)
	}
	return NewRunner(sess, palette.Default(), Options{Logger: log.New(io.Discard), OnStep: onStep}), sess
}

func mustParse(t *testing.T, src string) *Script {
	t.Helper()
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return s
}

func filledCols(snap interaction.Snapshot, row int) []int {
	var out []int
	for _, c := range snap.State.Rows[row].Cols {
		if c.Filled {
			out = append(out, c.Index)
		}
	}
	return out
}

func TestRun(t *testing.T) {
	s := mustParse(t, layoutScript)
	var seen []int
	r, _ := newRunner(t, s, func(res StepResult) { seen = append(seen, res.Index) })

	report, err := r.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Name != "heading and text" {
		t.Errorf("Name = %q", report.Name)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6}, seen); diff != "" {
		t.Errorf("OnStep calls mismatch (-want +got):\n%s", diff)
	}

	wantOK := []bool{true, true, false, true, true, false}
	for i, res := range report.Steps {
		if res.OK != wantOK[i] {
			t.Errorf("step %d OK = %v, want %v (%s)", i+1, res.OK, wantOK[i], res.Detail)
		}
	}
	if got := report.Steps[3].Component; got != "c2" {
		t.Errorf("resize component = %q, want c2", got)
	}

	snap := report.Snapshot
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, filledCols(snap, 0)); diff != "" {
		t.Errorf("row 0 filled mismatch (-want +got):\n%s", diff)
	}
	if len(snap.State.Rows) != 2 || !snap.State.Rows[1].Placeholder {
		t.Errorf("rows = %d, want occupied row plus placeholder", len(snap.State.Rows))
	}
	if snap.State.Rows[0].Height != 100 {
		t.Errorf("row 0 height = %v, want 100", snap.State.Rows[0].Height)
	}
	if snap.Selection == nil || snap.Selection.ComponentID != "c1" {
		t.Errorf("Selection = %+v, want c1", snap.Selection)
	}
}

func TestRunExpectationMismatch(t *testing.T) {
	s := mustParse(t, `
[[step]]
action = "drop"
item = "heading"
x = 10
y = 10

[[step]]
action = "drop"
item = "heading"
x = 10
y = 10
expect = "ok"
`)
	r, _ := newRunner(t, s, nil)
	report, err := r.Run(context.Background(), s)
	if !errors.Is(err, errors.ErrCodeConflict) {
		t.Fatalf("Run() error = %v, want CONFLICT", err)
	}
	if len(report.Steps) != 2 {
		t.Errorf("len(Steps) = %d, want 2", len(report.Steps))
	}
	if len(report.Snapshot.State.Groups) != 1 {
		t.Errorf("the rejected drop should not add a group")
	}
}

func TestRunReferences(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{
			name: "last before any drop",
			src:  "[[step]]\naction = \"select\"\ncomponent = \"$last\"\n",
			code: errors.ErrCodeInvalidScript,
		},
		{
			name: "ordinal out of range",
			src:  "[[step]]\naction = \"resize\"\ncomponent = \"#3\"\ndirection = \"right\"\npositions = [100]\n",
			code: errors.ErrCodeInvalidScript,
		},
		{
			name: "nothing selected",
			src:  "[[step]]\naction = \"select\"\ncomponent = \"$selected\"\n",
			code: errors.ErrCodeInvalidScript,
		},
		{
			name: "unknown palette item",
			src:  "[[step]]\naction = \"drop\"\nitem = \"video\"\n",
			code: errors.ErrCodeInvalidScript,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustParse(t, tt.src)
			r, _ := newRunner(t, s, nil)
			if _, err := r.Run(context.Background(), s); !errors.Is(err, tt.code) {
				t.Errorf("Run() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunLastAndSelected(t *testing.T) {
	s := mustParse(t, `
[[step]]
action = "drop"
item = "text"
x = 10
y = 10

[[step]]
action = "clear"

[[step]]
action = "select"
component = "$last"
expect = "ok"

[[step]]
action = "resize"
component = "$selected"
direction = "right"
positions = [-300]
expect = "ok"
`)
	r, _ := newRunner(t, s, nil)
	report, err := r.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, filledCols(report.Snapshot, 0)); diff != "" {
		t.Errorf("row 0 filled mismatch (-want +got):\n%s", diff)
	}
}

func TestRunDragPreview(t *testing.T) {
	s := mustParse(t, `
[[step]]
action = "drag"
item = "heading"
x = 250
y = 10
expect = "ok"
`)
	r, sess := newRunner(t, s, nil)
	report, err := r.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	area := report.Snapshot.SelectedArea
	if area == nil || area.StartCol != 2 || area.EndCol != 5 {
		t.Fatalf("SelectedArea = %+v, want cols 2..5", area)
	}
	if !report.Snapshot.Dragging {
		t.Error("a drag step should leave the drag open")
	}
	if len(sess.State().Groups) != 0 {
		t.Error("a drag step must not change the design")
	}
}

func TestRunDropUnknownItem(t *testing.T) {
	s := mustParse(t, `
[[step]]
action = "drop"
item = "carousel"
x = 10
y = 10
`)
	r, sess := newRunner(t, s, nil)
	_, err := r.Run(context.Background(), s)
	if !errors.Is(err, errors.ErrCodeInvalidScript) {
		t.Fatalf("Run() error = %v, want INVALID_SCRIPT", err)
	}
	snap := sess.Snapshot()
	if snap.Dragging || len(snap.State.Groups) != 0 {
		t.Errorf("unknown item left dragging=%v groups=%d, want no drag and no groups", snap.Dragging, len(snap.State.Groups))
	}
}

func TestRunCanceled(t *testing.T) {
	s := mustParse(t, layoutScript)
	r, _ := newRunner(t, s, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := r.Run(ctx, s)
	if err == nil || len(report.Steps) != 0 {
		t.Errorf("Run() = %d steps, %v; want canceled before the first step", len(report.Steps), err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no steps", `name = "empty"`},
		{"unknown key", "[[step]]\naction = \"clear\"\ncolour = \"red\"\n"},
		{"unknown action", "[[step]]\naction = \"paint\"\n"},
		{"drop without item", "[[step]]\naction = \"drop\"\n"},
		{"select without component", "[[step]]\naction = \"select\"\n"},
		{"bad direction", "[[step]]\naction = \"resize\"\ncomponent = \"#1\"\ndirection = \"up\"\npositions = [1]\n"},
		{"no positions", "[[step]]\naction = \"resize\"\ncomponent = \"#1\"\ndirection = \"left\"\n"},
		{"bad expect", "[[step]]\naction = \"clear\"\nexpect = \"maybe\"\n"},
		{"malformed", "[[step]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src)); !errors.Is(err, errors.ErrCodeInvalidScript) {
				t.Errorf("Parse() error = %v, want INVALID_SCRIPT", err)
			}
		})
	}
}

func TestGridConfig(t *testing.T) {
	s := mustParse(t, `
[grid]
default_number_of_cols = 6
default_number_of_rows = 3

[[step]]
action = "clear"
`)
	got := s.GridConfig(config.Default().Grid)
	want := config.Grid{BaseWidth: 1200, DefaultRowHeight: 100, DefaultNumberOfRows: 3, DefaultNumberOfCols: 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GridConfig() mismatch (-want +got):\n%s", diff)
	}

	plain := mustParse(t, "[[step]]\naction = \"clear\"\n")
	if diff := cmp.Diff(config.Default().Grid, plain.GridConfig(config.Default().Grid)); diff != "" {
		t.Errorf("GridConfig() without overrides mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two-columns.toml")
	if err := os.WriteFile(path, []byte("[[step]]\naction = \"clear\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Name != "two-columns" {
		t.Errorf("Name = %q, want file name", s.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidScript) {
		t.Errorf("Load(missing) error = %v, want INVALID_SCRIPT", err)
	}
}
