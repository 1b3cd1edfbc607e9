package hittest

import (
	"testing"

	"github.com/matzehuels/gridcanvas/pkg/grid"
)

func testRows() []grid.Row {
	rows := grid.GenerateRows(1200, 2, 12, 100)
	grid.MarkPlaceholder(rows)
	rows[0].Cols[6].Filled = true
	return rows
}

func TestIsInsideOfCol(t *testing.T) {
	col := ColInfo{Box: Box{Top: 10, Left: 100, Width: 100, Height: 50}}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{150, 30}, true},
		{"top-left corner", Point{100, 10}, true},
		{"right edge", Point{200, 30}, false},
		{"bottom edge", Point{150, 60}, false},
		{"left of box", Point{99.9, 30}, false},
		{"above box", Point{150, 9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInsideOfCol(tt.p, col); got != tt.want {
				t.Errorf("IsInsideOfCol(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestFindStartCol(t *testing.T) {
	rows := testRows()
	base := func(col int) ColInfo {
		return ColInfo{Coord: Coord{Row: 0, Col: col}, Box: Box{Left: float64(col) * 100, Width: 100, Height: 100}}
	}

	tests := []struct {
		name       string
		probe      Probe
		base       int
		step       int
		wantCol    int
		wantFilled bool
	}{
		{"same column", Probe{Point: Point{X: 350}}, 3, 1, 3, false},
		{"forward", Probe{Point: Point{X: 550}}, 3, 1, 5, false},
		{"forward onto filled", Probe{Point: Point{X: 650}}, 3, 1, 6, true},
		{"backward", Probe{Point: Point{X: 120}}, 5, -1, 1, false},
		{"clamped at last col", Probe{Point: Point{X: 5000}}, 3, 1, 11, false},
		{"clamped at first col", Probe{Point: Point{X: -300}}, 3, -1, 0, false},
		{"behind base forward", Probe{Point: Point{X: 50}}, 3, 1, 3, false},
		{"behind base backward", Probe{Point: Point{X: 950}}, 3, -1, 3, false},
		{"left edge on boundary", Probe{Point: Point{X: 500}, Side: SideLeft}, 3, 1, 5, false},
		{"right edge on boundary", Probe{Point: Point{X: 500}, Side: SideRight}, 3, 1, 4, false},
		{"right edge on boundary backward", Probe{Point: Point{X: 300}, Side: SideRight}, 5, -1, 2, false},
		{"left edge on boundary backward", Probe{Point: Point{X: 300}, Side: SideLeft}, 5, -1, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, filled := FindStartCol(rows, tt.probe, base(tt.base), tt.step)
			if got.Col != tt.wantCol || filled != tt.wantFilled {
				t.Errorf("FindStartCol() = (%d, %v), want (%d, %v)", got.Col, filled, tt.wantCol, tt.wantFilled)
			}
			if got.Row != 0 {
				t.Errorf("FindStartCol() row = %d, want 0", got.Row)
			}
		})
	}
}

func TestFindStartColUnknownRow(t *testing.T) {
	rows := testRows()
	got, filled := FindStartCol(rows, Probe{}, ColInfo{Coord: Coord{Row: 7, Col: 2}}, 1)
	if got != (Coord{Row: 7, Col: 2}) || filled {
		t.Errorf("FindStartCol() = (%v, %v), want base coordinate and false", got, filled)
	}
}

func TestDistanceFromCol(t *testing.T) {
	rows := testRows()
	c := func(col int) Coord { return Coord{Row: 0, Col: col} }

	tests := []struct {
		name         string
		from, to     Coord
		inclF, inclT bool
		want         float64
	}{
		{"both included", c(2), c(4), true, true, 300},
		{"exclusive", c(2), c(4), false, false, 100},
		{"include to", c(3), c(5), false, true, 200},
		{"include from", c(1), c(3), true, false, 200},
		{"reversed", c(5), c(3), true, false, 200},
		{"same col", c(4), c(4), true, true, 100},
		{"same col excluded", c(4), c(4), false, true, 0},
		{"unknown row", Coord{Row: 9, Col: 0}, Coord{Row: 9, Col: 3}, true, true, 0},
		{"beyond row", c(10), c(20), true, true, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistanceFromCol(rows, tt.from, tt.to, tt.inclF, tt.inclT); got != tt.want {
				t.Errorf("DistanceFromCol() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColBox(t *testing.T) {
	rows := testRows()
	rows[0].Height = 80

	got, ok := ColBox(rows, Point{X: 10, Y: 20}, 1, 3)
	if !ok {
		t.Fatal("ColBox() ok = false")
	}
	want := Box{Top: 100, Left: 310, Width: 100, Height: 100}
	if got.Box != want {
		t.Errorf("ColBox() = %+v, want %+v", got.Box, want)
	}

	if _, ok := ColBox(rows, Point{}, 0, 12); ok {
		t.Error("ColBox() out of range col should fail")
	}
	if _, ok := ColBox(rows, Point{}, 2, 0); ok {
		t.Error("ColBox() out of range row should fail")
	}
}

func TestLocate(t *testing.T) {
	rows := testRows()

	tests := []struct {
		name   string
		p      Point
		want   Coord
		wantOK bool
	}{
		{"first cell", Point{0, 0}, Coord{0, 0}, true},
		{"second row", Point{1150, 150}, Coord{1, 11}, true},
		{"boundary belongs right", Point{400, 50}, Coord{0, 4}, true},
		{"below grid", Point{10, 250}, Coord{}, false},
		{"right of grid", Point{1200, 50}, Coord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Locate(rows, Point{}, tt.p)
			if ok != tt.wantOK {
				t.Fatalf("Locate() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.Coord != tt.want {
				t.Errorf("Locate() = %v, want %v", got.Coord, tt.want)
			}
		})
	}
}
