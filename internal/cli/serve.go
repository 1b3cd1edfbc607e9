package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcanvas/pkg/server"
)

// serveCommand creates the serve command for running the session API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP session API",
		Long: `Run the HTTP session API.

Every client creates a design session and drives it with drag, drop,
select and resize requests. Requests and responses are JSON, or msgpack
when sent with Content-Type or Accept set to application/msgpack.
Sessions expire after the configured idle time.`,
		Example: `  gridcanvas serve
  gridcanvas serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			pal, err := c.loadPalette(cfg)
			if err != nil {
				return err
			}

			srv := server.New(cfg, server.Options{Logger: c.Logger, Palette: pal})
			printInfo("Serving %d palette items on %s", len(pal.Items), StyleHighlight.Render(cfg.Server.Addr))
			printDetail("sessions expire after %s of inactivity", cfg.Server.SessionTTL)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the config)")

	return cmd
}
