package script

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/grid"
	"github.com/matzehuels/gridcanvas/pkg/grid/hittest"
	"github.com/matzehuels/gridcanvas/pkg/interaction"
	"github.com/matzehuels/gridcanvas/pkg/palette"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Index  int    `json:"index"`
	Action Action `json:"action"`
	// Component is the component the step created or acted on.
	Component string `json:"component,omitempty"`
	OK        bool   `json:"ok"`
	// Detail is a short human readable description of the outcome.
	Detail string `json:"detail,omitempty"`
}

// Report is the outcome of a run.
type Report struct {
	Name     string               `json:"name"`
	Steps    []StepResult         `json:"steps"`
	Snapshot interaction.Snapshot `json:"snapshot"`
}

// Options configures a [Runner].
type Options struct {
	// Logger receives one debug line per step. Nil uses log.Default().
	Logger *log.Logger
	// OnStep is called after every step, before the invariants are checked.
	OnStep func(StepResult)
}

// Runner replays scripts against one session.
type Runner struct {
	session *interaction.Session
	palette *palette.Palette
	logger  *log.Logger
	onStep  func(StepResult)

	dropped []string
}

// NewRunner returns a runner driving session with items from pal.
func NewRunner(session *interaction.Session, pal *palette.Palette, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{session: session, palette: pal, logger: logger, onStep: opts.OnStep}
}

// Run executes every step of s in order. It stops at the first step that
// cannot be executed, misses its expectation or leaves the design in an
// inconsistent state. The report covers the steps run so far.
func (r *Runner) Run(ctx context.Context, s *Script) (Report, error) {
	report := Report{Name: s.Name}
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			report.Snapshot = r.session.Snapshot()
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, err := r.step(ctx, st)
		res.Index, res.Action = i+1, st.Action
		if err != nil {
			report.Snapshot = r.session.Snapshot()
			return report, fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
		report.Steps = append(report.Steps, res)
		r.logger.Debug("step", "index", res.Index, "action", res.Action, "component", res.Component, "ok", res.OK, "detail", res.Detail)
		if r.onStep != nil {
			r.onStep(res)
		}

		if err := checkExpect(st.Expect, res); err != nil {
			report.Snapshot = r.session.Snapshot()
			return report, fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
		if err := r.checkInvariants(); err != nil {
			report.Snapshot = r.session.Snapshot()
			return report, fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
	}
	report.Snapshot = r.session.Snapshot()
	return report, nil
}

func (r *Runner) step(ctx context.Context, st Step) (StepResult, error) {
	switch st.Action {
	case ActionDrag:
		return r.drag(st)
	case ActionDrop:
		return r.drop(ctx, st)
	case ActionLeave:
		r.session.DragLeave()
		return StepResult{OK: true}, nil
	case ActionSelect:
		id, err := r.resolve(st.Component)
		if err != nil {
			return StepResult{}, err
		}
		_, ok := r.session.Click(id)
		return StepResult{Component: id, OK: ok}, nil
	case ActionClear:
		r.session.ClearSelection()
		return StepResult{OK: true}, nil
	case ActionResize:
		return r.resize(ctx, st)
	}
	return StepResult{}, errors.New(errors.ErrCodeInvalidScript, "unknown action %q", st.Action)
}

func (r *Runner) item(name string) (interaction.DragItem, error) {
	it, ok := r.palette.Lookup(name)
	if !ok {
		return interaction.DragItem{}, errors.New(errors.ErrCodeInvalidScript, "palette has no item %q", name)
	}
	return it.DragItem(), nil
}

func (r *Runner) drag(st Step) (StepResult, error) {
	res, _, err := r.hover(st)
	return res, err
}

// hover drags the step's item over its point and returns the dragged item
// along with the previewed result.
func (r *Runner) hover(st Step) (StepResult, interaction.DragItem, error) {
	item, err := r.item(st.Item)
	if err != nil {
		return StepResult{}, item, err
	}
	if err := r.session.DragEnter(); err != nil {
		return StepResult{}, item, err
	}
	area := r.session.DragOver(item, hittest.Point{X: st.X, Y: st.Y})
	if area == nil {
		return StepResult{Detail: "outside the grid"}, item, nil
	}
	return StepResult{OK: area.Droppable(), Detail: describeArea(area.Row, area.StartCol, area.EndCol, area.Conflict)}, item, nil
}

func (r *Runner) drop(ctx context.Context, st Step) (StepResult, error) {
	res, item, err := r.hover(st)
	if err != nil {
		return res, err
	}
	comp, ok := r.session.Drop(ctx, item)
	if !ok {
		res.OK = false
		return res, nil
	}
	r.dropped = append(r.dropped, comp.ID)
	return StepResult{Component: comp.ID, OK: true, Detail: res.Detail}, nil
}

func (r *Runner) resize(ctx context.Context, st Step) (StepResult, error) {
	id, err := r.resolve(st.Component)
	if err != nil {
		return StepResult{}, err
	}
	if _, err := r.session.ResizeStart(ctx, id); err != nil {
		if errors.Is(err, errors.ErrCodeComponentNotFound) {
			return StepResult{Component: id, Detail: "component not found"}, nil
		}
		return StepResult{}, err
	}

	dir := interaction.Direction(st.Direction)
	var prev float64
	for _, pos := range st.Positions {
		r.session.ResizeMove(interaction.ResizeEvent{Direction: dir, Position: pos, PrevPosition: prev})
		prev = pos
	}

	var detail string
	if a := r.session.SelectedArea(); a != nil {
		detail = describeArea(a.Row, a.StartCol, a.EndCol, a.Conflict)
	}
	committed, err := r.session.ResizeEnd(ctx)
	if errors.Is(err, errors.ErrCodeComponentNotFound) {
		return StepResult{Component: id, Detail: "component not found"}, nil
	}
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{Component: id, OK: committed, Detail: detail}, nil
}

// resolve maps a component reference to an id.
func (r *Runner) resolve(ref string) (string, error) {
	switch {
	case ref == "$last":
		if len(r.dropped) == 0 {
			return "", errors.New(errors.ErrCodeInvalidScript, "$last: nothing dropped yet")
		}
		return r.dropped[len(r.dropped)-1], nil
	case ref == "$selected":
		sel := r.session.Selection()
		if sel == nil {
			return "", errors.New(errors.ErrCodeInvalidScript, "$selected: nothing selected")
		}
		return sel.ComponentID, nil
	case strings.HasPrefix(ref, "#"):
		n, err := strconv.Atoi(ref[1:])
		if err != nil || n < 1 {
			return "", errors.New(errors.ErrCodeInvalidScript, "invalid component reference %q", ref)
		}
		if n > len(r.dropped) {
			return "", errors.New(errors.ErrCodeInvalidScript, "%s: only %d components dropped", ref, len(r.dropped))
		}
		return r.dropped[n-1], nil
	}
	return ref, nil
}

func checkExpect(want Expect, res StepResult) error {
	switch {
	case want == ExpectOK && !res.OK:
		return errors.New(errors.ErrCodeConflict, "expected ok, step was rejected: %s", res.Detail)
	case want == ExpectRejected && res.OK:
		return errors.New(errors.ErrCodeConflict, "expected rejected, step succeeded: %s", res.Detail)
	}
	return nil
}

// checkInvariants verifies the grid structure and that every component is
// reachable through RowsToGroups and ComponentsInfo.
func (r *Runner) checkInvariants() error {
	st := r.session.State()
	if err := grid.Validate(st.Rows, r.session.Config().BaseWidth); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "grid invariant violated")
	}
	for g, group := range st.Groups {
		for _, it := range group.Items {
			id := it.ComponentID()
			ref, _, ok := design.FindItem(st.RowsToGroups, st.ComponentsInfo, st.Groups, id)
			if !ok || ref.Group != g || ref.Row >= len(st.Rows) {
				return errors.New(errors.ErrCodeInternal, "component %q in group %d is not indexed", id, g)
			}
			if !allFilled(st.Rows[ref.Row], it.Start, it.End) {
				return errors.New(errors.ErrCodeInternal, "component %q covers unfilled columns %d-%d of row %d", id, it.Start, it.End, ref.Row)
			}
		}
	}
	return nil
}

func allFilled(row grid.Row, start, end int) bool {
	if start < 0 || end >= len(row.Cols) {
		return false
	}
	for c := start; c <= end; c++ {
		if !row.Cols[c].Filled {
			return false
		}
	}
	return true
}

func describeArea(row, start, end int, conflict bool) string {
	s := fmt.Sprintf("row %d cols %d-%d", row, start, end)
	if conflict {
		s += " (conflict)"
	}
	return s
}
