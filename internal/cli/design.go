package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcanvas/pkg/interaction"
	"github.com/matzehuels/gridcanvas/pkg/render/term"
)

// designCommand creates the design command for interactive editing.
func (c *CLI) designCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Edit a design interactively",
		Long: `Edit a design interactively in the terminal.

Move the pointer with the arrow keys, pick a palette item with tab and drop
it with enter. Select the component under the pointer with s and resize it
with r. The final design is printed on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			pal, err := c.loadPalette(cfg)
			if err != nil {
				return err
			}
			// Log lines would tear the full-screen view.
			session, err := interaction.New(cfg.Grid, interaction.Options{Logger: log.New(io.Discard)})
			if err != nil {
				return err
			}

			model := NewDesignModel(cmd.Context(), session, pal, plain)
			if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return err
			}

			session.DragLeave()
			snap := session.Snapshot()
			fmt.Print(term.Canvas(snap, term.Options{Plain: plain}))
			printStats(len(snap.State.Rows), len(snap.State.ComponentsInfo), snap.TotalHeight)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "render without colors")

	return cmd
}
