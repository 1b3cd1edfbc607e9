package grid_test

import (
	"fmt"

	"github.com/matzehuels/gridcanvas/pkg/grid"
)

func ExampleGenerateRows() {
	rows := grid.GenerateRows(1200, 2, 12, 100)
	grid.MarkPlaceholder(rows)

	fmt.Println("rows:", len(rows))
	fmt.Println("cols:", len(rows[0].Cols), "width:", rows[0].Cols[0].Width)
	fmt.Println("placeholder:", rows[1].Placeholder)
	// Output:
	// rows: 2
	// cols: 12 width: 100
	// placeholder: true
}

func ExampleAreColsEmpty() {
	row := grid.GenerateRows(1200, 1, 12, 100)[0]
	row.Cols[4].Filled = true

	fmt.Println(grid.AreColsEmpty(row, 0, 3, grid.ExcludeNone))
	fmt.Println(grid.AreColsEmpty(row, 2, 6, grid.ExcludeNone))
	fmt.Println(grid.AreColsEmpty(row, 0, 4, grid.ExcludeTo))
	// Output:
	// true
	// false
	// true
}

func ExampleUpdateRows() {
	rows := grid.GenerateRows(1200, 1, 12, 100)
	grid.MarkPlaceholder(rows)

	// Drop a four column component onto the placeholder row.
	res, ok := grid.UpdateRows(rows, grid.Update{
		Current:             grid.Span{Row: 0, StartCol: 0, EndCol: 3, Height: 80},
		DefaultRowHeight:    100,
		DefaultNumberOfCols: 12,
		TotalWidth:          1200,
	})
	fmt.Println("applied:", ok)
	fmt.Println("rows:", len(res.Rows))
	fmt.Println("base height:", res.UpdatedBaseRow.Height)
	fmt.Println("new placeholder:", res.Rows[1].Placeholder)
	// Output:
	// applied: true
	// rows: 2
	// base height: 80
	// new placeholder: true
}
