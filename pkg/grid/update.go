package grid

// Span describes a contiguous run of columns in one row that is being
// vacated or occupied by [UpdateRows].
//
// StartCol and EndCol are inclusive column indices. When Width is positive
// the span also carries a pixel extent [Left, Left+Width) measured from the
// row's left edge; UpdateRows then splits columns so the extent is covered by
// whole columns and re-resolves StartCol and EndCol from it. Items laid out in
// fixed (pixel) mode use this; grid-mode items leave Width at zero.
type Span struct {
	Row      int     `json:"row"`
	StartCol int     `json:"startCol"`
	EndCol   int     `json:"endCol"`
	Height   float64 `json:"height,omitempty"`
	Left     float64 `json:"left,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Empty    bool    `json:"empty"`
}

// Update holds the parameters of [UpdateRows].
type Update struct {
	// Previous, when set, is the span vacated before Current is applied.
	Previous *Span
	// Current is the span to occupy (or vacate, when Current.Empty is set).
	// Current.Height is the height the occupant needs; zero keeps the row height.
	Current Span

	DefaultRowHeight    float64
	DefaultNumberOfCols int
	TotalWidth          float64

	// OnRowIndexChange is called for every pre-existing row whose index
	// changed, with the row as it was before the update. Rows merged into a
	// neighbour report the index of the row that absorbed them.
	OnRowIndexChange func(old Row, newIndex int)

	// OnColSplit is called for every column split while aligning a pixel
	// span. row is the row before the update and col the index of the split
	// column at the time of the split; the new right half is col+1.
	OnColSplit func(row Row, col int)
}

// Result is the outcome of [UpdateRows].
type Result struct {
	Rows []Row
	// UpdatedBaseRow is the row that received Current, with its final index.
	UpdatedBaseRow Row
	// Current is the applied span with its final row index and the column
	// range resolved after alignment.
	Current Span
}

// entry tracks a row through an update together with the indices it had
// before the update. New rows have no origins; merged rows have several.
type entry struct {
	row     Row
	origins []int
	touched bool
}

// UpdateRows is the single mutation primitive of the grid. It vacates
// u.Previous (if any), aligns and occupies u.Current, adjusts row heights,
// merges rows and columns left empty, and renumbers rows.
//
// In order:
//  1. the columns of u.Previous are marked unfilled,
//  2. a pixel extent on u.Current splits columns so the span covers whole
//     columns (reported through u.OnColSplit),
//  3. the columns of u.Current are marked filled and the target row height
//     is adjusted: a placeholder target takes the occupant height and a new
//     placeholder is appended; an empty target taller than the occupant
//     keeps the occupant height and the remaining space becomes a sibling
//     row below it; a target shorter than the occupant grows,
//  4. touched rows left fully empty get the default uniform column layout
//     back, and adjacent empty rows of the same layout merge,
//  5. rows are renumbered and u.OnRowIndexChange is invoked for every row
//     whose index changed.
//
// rows is never modified. When the update cannot be applied (target row or
// columns out of range, inverted span) UpdateRows returns rows unchanged and
// false.
func UpdateRows(rows []Row, u Update) (Result, bool) {
	noop := Result{Rows: rows}
	cur := u.Current
	if cur.Row < 0 || cur.Row >= len(rows) {
		return noop, false
	}
	if cur.Width <= 0 && !validRange(rows[cur.Row], cur.StartCol, cur.EndCol) {
		return noop, false
	}
	if p := u.Previous; p != nil && (p.Row < 0 || p.Row >= len(rows) || !validRange(rows[p.Row], p.StartCol, p.EndCol)) {
		return noop, false
	}

	totalWidth := u.TotalWidth
	if totalWidth <= 0 {
		totalWidth = rows[cur.Row].Width()
	}

	work := make([]entry, len(rows))
	for i, r := range rows {
		work[i] = entry{row: r.Clone(), origins: []int{i}}
	}

	if p := u.Previous; p != nil {
		setFilled(&work[p.Row].row, p.StartCol, p.EndCol, !p.Empty)
		work[p.Row].touched = true
	}

	target := &work[cur.Row]
	target.touched = true

	if cur.Width > 0 {
		left, right := clampExtent(cur.Left, cur.Left+cur.Width, target.row.Width())
		for _, x := range []float64{left, right} {
			var at int
			target.row.Cols, at = splitAt(target.row.Cols, x)
			if at >= 0 && u.OnColSplit != nil {
				u.OnColSplit(rows[cur.Row], at)
			}
		}
		start, end, ok := resolveExtent(target.row, left, right)
		if !ok {
			return noop, false
		}
		cur.StartCol, cur.EndCol = start, end
	}

	wasEmpty := target.row.IsEmpty()
	wasPlaceholder := target.row.Placeholder
	setFilled(&target.row, cur.StartCol, cur.EndCol, !cur.Empty)

	height := cur.Height
	if height <= 0 {
		height = target.row.Height
	}

	var sibling *entry
	switch {
	case cur.Empty:
	case wasPlaceholder:
		target.row.Placeholder = false
		target.row.Height = height
		work = append(work, entry{
			row: Row{
				Height:      u.DefaultRowHeight,
				Placeholder: true,
				Cols:        uniformCols(u.DefaultNumberOfCols, totalWidth),
			},
		})
	case wasEmpty && height < target.row.Height-Epsilon:
		rest := target.row.Clone()
		rest.Height = target.row.Height - height
		setFilled(&rest, 0, len(rest.Cols)-1, false)
		target.row.Height = height
		sibling = &entry{row: rest, touched: true}
	case height > target.row.Height+Epsilon:
		target.row.Height = height
	}

	if sibling != nil {
		work = append(work[:cur.Row+1], append([]entry{*sibling}, work[cur.Row+1:]...)...)
	}

	if u.DefaultNumberOfCols > 0 {
		for i := range work {
			e := &work[i]
			if e.touched && !e.row.Placeholder && e.row.IsEmpty() {
				e.row.Cols = uniformCols(u.DefaultNumberOfCols, totalWidth)
			}
		}
	}

	work = mergeEmptyRows(work)

	out := make([]Row, len(work))
	base := -1
	for i := range work {
		e := &work[i]
		for _, o := range e.origins {
			if o == cur.Row {
				base = i
			}
			if o != i && u.OnRowIndexChange != nil {
				u.OnRowIndexChange(rows[o], i)
			}
		}
		e.row.Index = i
		for j := range e.row.Cols {
			e.row.Cols[j].Index = j
		}
		out[i] = e.row
	}

	cur.Row = base
	return Result{Rows: out, UpdatedBaseRow: out[base], Current: cur}, true
}

func validRange(r Row, start, end int) bool {
	return start >= 0 && start <= end && end < len(r.Cols)
}

func setFilled(r *Row, start, end int, filled bool) {
	for c := start; c <= end && c < len(r.Cols); c++ {
		if c >= 0 {
			r.Cols[c].Filled = filled
		}
	}
}

func clampExtent(left, right, width float64) (float64, float64) {
	if left < 0 {
		left = 0
	}
	if right > width {
		right = width
	}
	return left, right
}

// splitAt splits the column whose interior contains x into two columns that
// inherit its filled state. It returns the new columns and the index of the
// split column, or -1 when x already lies on a boundary.
func splitAt(cols []Col, x float64) ([]Col, int) {
	var left float64
	for i, c := range cols {
		right := left + c.Width
		if x > left+Epsilon && x < right-Epsilon {
			out := make([]Col, 0, len(cols)+1)
			out = append(out, cols[:i]...)
			out = append(out,
				Col{Width: x - left, Filled: c.Filled},
				Col{Width: right - x, Filled: c.Filled},
			)
			out = append(out, cols[i+1:]...)
			for j := range out {
				out[j].Index = j
			}
			return out, i
		}
		left = right
	}
	return cols, -1
}

// resolveExtent returns the columns exactly covered by [left, right).
func resolveExtent(r Row, left, right float64) (int, int, bool) {
	start, end := -1, -1
	var x float64
	for i, c := range r.Cols {
		if start < 0 && x >= left-Epsilon {
			start = i
		}
		x += c.Width
		if x <= right+Epsilon {
			end = i
		}
	}
	if start < 0 || end < start {
		return 0, 0, false
	}
	return start, end, true
}

// mergeEmptyRows folds adjacent fully-empty, non-placeholder rows with the
// same column layout into one row.
func mergeEmptyRows(work []entry) []entry {
	out := work[:0:0]
	for _, e := range work {
		if n := len(out); n > 0 {
			prev := &out[n-1]
			if mergeable(prev.row, e.row) {
				prev.row.Height += e.row.Height
				prev.origins = append(prev.origins, e.origins...)
				prev.touched = true
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func mergeable(a, b Row) bool {
	return !a.Placeholder && !b.Placeholder && a.IsEmpty() && b.IsEmpty() && sameLayout(a, b)
}
