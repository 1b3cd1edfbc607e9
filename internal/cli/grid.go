package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcanvas/pkg/config"
	"github.com/matzehuels/gridcanvas/pkg/render/term"
)

// gridOptions override the configured grid.
type gridOptions struct {
	width  float64
	height float64
	rows   int
	cols   int
	plain  bool
}

func (o gridOptions) grid() config.Grid {
	return config.Grid{
		BaseWidth:           o.width,
		DefaultRowHeight:    o.height,
		DefaultNumberOfRows: o.rows,
		DefaultNumberOfCols: o.cols,
	}
}

// gridCommand creates the grid command for printing an empty canvas.
func (c *CLI) gridCommand() *cobra.Command {
	var opts gridOptions

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print a freshly generated grid",
		Long: `Print a freshly generated grid and the table of its rows.

The grid comes from the config file; flags override single settings.`,
		Example: `  gridcanvas grid
  gridcanvas grid --cols 8 --rows 3
  gridcanvas grid --width 960 --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			g := cfg.Grid.Override(opts.grid())
			s, err := newSession(cmd.Context(), g)
			if err != nil {
				return err
			}
			snap := s.Snapshot()

			printKeyValue("Width", fmt.Sprintf("%gpx", g.BaseWidth))
			printKeyValue("Columns", fmt.Sprintf("%d × %gpx", g.DefaultNumberOfCols, g.ColWidth()))
			printKeyValue("Rows", fmt.Sprintf("%d × %gpx", g.DefaultNumberOfRows, g.DefaultRowHeight))
			printNewline()
			fmt.Print(term.Canvas(snap, term.Options{Plain: opts.plain}))
			printNewline()
			fmt.Println(term.Rows(snap))
			printNewline()
			printNextStep("Place components", appName+" design")
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.height, "row-height", 0, "row height in pixels")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "number of rows")
	cmd.Flags().IntVar(&opts.cols, "cols", 0, "number of base columns")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "render without colors")

	return cmd
}
