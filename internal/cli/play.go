package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcanvas/pkg/render/term"
	"github.com/matzehuels/gridcanvas/pkg/script"
)

// playCommand creates the play command for replaying interaction scripts.
func (c *CLI) playCommand() *cobra.Command {
	var plain, quiet bool

	cmd := &cobra.Command{
		Use:   "play <script.toml>",
		Short: "Replay an interaction script",
		Long: `Replay the drags, drops, selections and resizes of a TOML script against a
fresh design session and print the resulting canvas.

Each step can state whether it is expected to succeed ("ok") or be
rejected ("rejected"). Replay stops at the first step that misses its
expectation or leaves the design inconsistent.`,
		Example: `  gridcanvas play examples/scripts/landing.toml
  gridcanvas play --plain --quiet layout.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			onStep := printStep
			if quiet {
				onStep = nil
			}
			report, err := c.replay(cmd.Context(), args[0], onStep)
			if err != nil {
				printError("%s stopped after %d steps", report.Name, len(report.Steps))
				return err
			}

			printNewline()
			fmt.Print(term.Canvas(report.Snapshot, term.Options{Plain: plain}))
			printStats(len(report.Snapshot.State.Rows), len(report.Snapshot.State.ComponentsInfo), report.Snapshot.TotalHeight)
			printNewline()
			printNextStep("Inspect the design", fmt.Sprintf("%s inspect %s --svg design.svg", appName, args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "render without colors")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print individual steps")

	return cmd
}

// replay loads the script at path and runs it on a new session.
func (c *CLI) replay(ctx context.Context, path string, onStep func(script.StepResult)) (script.Report, error) {
	logger := loggerFromContext(ctx)

	s, err := script.Load(path)
	if err != nil {
		return script.Report{Name: path}, err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return script.Report{Name: s.Name}, err
	}
	pal, err := c.loadPalette(cfg)
	if err != nil {
		return script.Report{Name: s.Name}, err
	}
	session, err := newSession(ctx, s.GridConfig(cfg.Grid))
	if err != nil {
		return script.Report{Name: s.Name}, err
	}

	prog := newProgress(logger)
	runner := script.NewRunner(session, pal, script.Options{Logger: logger, OnStep: onStep})
	report, err := runner.Run(ctx, s)
	if err != nil {
		return report, err
	}
	prog.done(fmt.Sprintf("Replayed %d steps of %s", len(report.Steps), report.Name))
	return report, nil
}

// printStep prints one replayed step.
func printStep(res script.StepResult) {
	line := fmt.Sprintf("%2d %-7s", res.Index, res.Action)
	if res.Component != "" {
		line += " " + StyleHighlight.Render(shortID(res.Component))
	}
	if res.Detail != "" {
		line += " " + StyleDim.Render(res.Detail)
	}
	if res.OK {
		printSuccess("%s", line)
		return
	}
	printWarning("%s", line)
}

// shortID abbreviates a component id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
