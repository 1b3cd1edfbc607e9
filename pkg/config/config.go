// Package config loads gridcanvas settings from TOML files.
//
// A configuration file has a [grid] table describing the canvas and a
// [server] table for the HTTP session API. Every key is optional; missing
// keys keep the values from [Default].
//
//	palette = "palette.yaml"
//
//	[grid]
//	base_width = 1200
//	default_row_height = 100
//	default_number_of_rows = 1
//	default_number_of_cols = 12
//
//	[server]
//	addr = ":8080"
//	session_ttl = "30m"
//	max_sessions = 1000
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridcanvas/pkg/errors"
)

// Grid describes the canvas a design session starts from.
type Grid struct {
	BaseWidth           float64 `toml:"base_width" json:"baseWidth" msgpack:"baseWidth"`
	DefaultRowHeight    float64 `toml:"default_row_height" json:"defaultRowHeight" msgpack:"defaultRowHeight"`
	DefaultNumberOfRows int     `toml:"default_number_of_rows" json:"defaultNumberOfRows" msgpack:"defaultNumberOfRows"`
	DefaultNumberOfCols int     `toml:"default_number_of_cols" json:"defaultNumberOfCols" msgpack:"defaultNumberOfCols"`
}

// ColWidth returns the width of one base column.
func (g Grid) ColWidth() float64 {
	if g.DefaultNumberOfCols <= 0 {
		return 0
	}
	return g.BaseWidth / float64(g.DefaultNumberOfCols)
}

// Override returns g with every non-zero field of o applied.
func (g Grid) Override(o Grid) Grid {
	if o.BaseWidth != 0 {
		g.BaseWidth = o.BaseWidth
	}
	if o.DefaultRowHeight != 0 {
		g.DefaultRowHeight = o.DefaultRowHeight
	}
	if o.DefaultNumberOfRows != 0 {
		g.DefaultNumberOfRows = o.DefaultNumberOfRows
	}
	if o.DefaultNumberOfCols != 0 {
		g.DefaultNumberOfCols = o.DefaultNumberOfCols
	}
	return g
}

// Validate checks that all dimensions are positive.
func (g Grid) Validate() error {
	if err := errors.ValidatePositive(errors.ErrCodeInvalidConfig, "base_width", g.BaseWidth); err != nil {
		return err
	}
	if err := errors.ValidatePositive(errors.ErrCodeInvalidConfig, "default_row_height", g.DefaultRowHeight); err != nil {
		return err
	}
	if err := errors.ValidateAtLeast(errors.ErrCodeInvalidConfig, "default_number_of_rows", g.DefaultNumberOfRows, 1); err != nil {
		return err
	}
	return errors.ValidateAtLeast(errors.ErrCodeInvalidConfig, "default_number_of_cols", g.DefaultNumberOfCols, 1)
}

// Server configures the HTTP session API.
type Server struct {
	Addr        string        `toml:"addr"`
	SessionTTL  time.Duration `toml:"session_ttl"`
	MaxSessions int           `toml:"max_sessions"`
}

// Validate checks the server settings.
func (s Server) Validate() error {
	if s.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server addr cannot be empty")
	}
	if s.SessionTTL <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "session_ttl must be positive, got %s", s.SessionTTL)
	}
	return errors.ValidateAtLeast(errors.ErrCodeInvalidConfig, "max_sessions", s.MaxSessions, 1)
}

// Config is the complete file configuration.
type Config struct {
	// Palette is the path of a YAML palette file. Relative paths are
	// resolved against the directory of the config file.
	Palette string `toml:"palette"`
	Grid    Grid   `toml:"grid"`
	Server  Server `toml:"server"`
}

// Default returns the built-in configuration: a 1200px wide canvas with 12
// columns and a single 100px row.
func Default() Config {
	return Config{
		Grid: Grid{
			BaseWidth:           1200,
			DefaultRowHeight:    100,
			DefaultNumberOfRows: 1,
			DefaultNumberOfCols: 12,
		},
		Server: Server{
			Addr:        ":8080",
			SessionTTL:  30 * time.Minute,
			MaxSessions: 1000,
		},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// Parse decodes TOML data on top of [Default] and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Palette != "" && !filepath.IsAbs(cfg.Palette) {
		cfg.Palette = filepath.Join(filepath.Dir(path), cfg.Palette)
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/gridcanvas/config.toml (or the
// platform equivalent). It returns "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gridcanvas", "config.toml")
}

// Resolve loads path when it is set. Otherwise it loads [DefaultPath] if
// that file exists and falls back to [Default].
func Resolve(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	def := DefaultPath()
	if def == "" {
		return Default(), nil
	}
	if _, err := os.Stat(def); err != nil {
		return Default(), nil
	}
	return Load(def)
}
