// Package cli implements the gridcanvas command-line interface.
//
// The commands drive the design engine from a terminal: printing grids,
// replaying TOML interaction scripts, exporting a design as a graph,
// serving the session API and editing a design interactively. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - grid: Print a freshly generated grid and its rows
//   - play: Replay an interaction script and print the final canvas
//   - inspect: Replay a script and export the design as tables, DOT or SVG
//   - serve: Run the HTTP session API
//   - design: Edit a design interactively in the terminal
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and the observability hooks are backed by
// the same logger.
//
// # Example
//
//	import "github.com/matzehuels/gridcanvas/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli
