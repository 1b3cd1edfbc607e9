package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/render/dot"
	"github.com/matzehuels/gridcanvas/pkg/render/term"
	"github.com/matzehuels/gridcanvas/pkg/script"
)

// inspectOptions select the exports of the inspect command.
type inspectOptions struct {
	dot  string
	svg  string
	json string
}

// inspectCommand creates the inspect command for exporting a replayed design.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect <script.toml>",
		Short: "Replay a script and export the design",
		Long: `Replay a script and print the rows and components of the resulting design.

The design can also be exported as a Graphviz graph linking rows, groups
and components (--dot, --svg) or as the JSON snapshot the session API
returns (--json). Use "-" to write DOT or JSON to stdout.`,
		Example: `  gridcanvas inspect layout.toml
  gridcanvas inspect layout.toml --svg design.svg
  gridcanvas inspect layout.toml --dot - | dot -Tpng > design.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.replay(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), report, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the design graph in DOT format")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "render the design graph to an SVG file")
	cmd.Flags().StringVar(&opts.json, "json", "", "write the final snapshot as JSON")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, report script.Report, opts inspectOptions) error {
	snap := report.Snapshot
	stdout := opts.dot == "-" || opts.json == "-"

	if !stdout {
		printInfo("%s", StyleTitle.Render(report.Name))
		printStats(len(snap.State.Rows), len(snap.State.ComponentsInfo), snap.TotalHeight)
		printNewline()
		fmt.Println(term.Rows(snap))
		printNewline()
		fmt.Println(term.Components(snap))
	}

	graph := dot.ToDOT(snap)
	if opts.dot != "" {
		if err := writeOutput(opts.dot, []byte(graph)); err != nil {
			return err
		}
	}
	if opts.svg != "" {
		svg, err := dot.RenderSVG(ctx, graph)
		if err != nil {
			return err
		}
		if err := writeOutput(opts.svg, svg); err != nil {
			return err
		}
	}
	if opts.json != "" {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
		}
		if err := writeOutput(opts.json, append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	printFile(path)
	return nil
}
