// Package cli implements the gridcanvas command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcanvas/pkg/buildinfo"
	"github.com/matzehuels/gridcanvas/pkg/config"
	"github.com/matzehuels/gridcanvas/pkg/interaction"
	"github.com/matzehuels/gridcanvas/pkg/observability"
	"github.com/matzehuels/gridcanvas/pkg/palette"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "gridcanvas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	palettePath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridcanvas lays out document components on a column grid",
		Long:         `Gridcanvas is a grid-based document designer. Components are dragged from a palette onto rows of columns, selected and resized, and the resulting design can be replayed from scripts, inspected as a graph or served over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetSessionHooks(logSessionHooks{logger: c.Logger})
			observability.SetServerHooks(logServerHooks{logger: c.Logger})
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gridcanvas/config.toml)")
	root.PersistentFlags().StringVar(&c.palettePath, "palette", "", "palette YAML file (overrides the config)")

	root.AddCommand(c.gridCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.designCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config Helpers
// =============================================================================

// loadConfig resolves the config file named by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config loaded", "path", c.configPath, "cols", cfg.Grid.DefaultNumberOfCols, "width", cfg.Grid.BaseWidth)
	return cfg, nil
}

// loadPalette returns the palette named by --palette, then by the config,
// then the built-in one.
func (c *CLI) loadPalette(cfg config.Config) (*palette.Palette, error) {
	path := c.palettePath
	if path == "" {
		path = cfg.Palette
	}
	if path == "" {
		return palette.Default(), nil
	}
	pal, err := palette.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("palette loaded", "path", path, "items", len(pal.Items))
	return pal, nil
}

// newSession creates a design session logging to the context's logger.
func newSession(ctx context.Context, cfg config.Grid) (*interaction.Session, error) {
	return interaction.New(cfg, interaction.Options{Logger: loggerFromContext(ctx)})
}
