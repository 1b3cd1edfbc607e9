package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/gridcanvas/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.Grid.ColWidth(); got != 100 {
		t.Errorf("ColWidth() = %v, want 100", got)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
palette = "items.yaml"

[grid]
base_width = 960
default_number_of_cols = 8

[server]
session_ttl = "5m"
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Grid.BaseWidth != 960 || cfg.Grid.DefaultNumberOfCols != 8 {
		t.Errorf("Grid = %+v", cfg.Grid)
	}
	if cfg.Grid.DefaultRowHeight != 100 {
		t.Errorf("DefaultRowHeight = %v, want default 100", cfg.Grid.DefaultRowHeight)
	}
	if cfg.Server.SessionTTL != 5*time.Minute {
		t.Errorf("SessionTTL = %v, want 5m", cfg.Server.SessionTTL)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want default", cfg.Server.Addr)
	}
	if cfg.Palette != "items.yaml" {
		t.Errorf("Palette = %q", cfg.Palette)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[grid\nbase_width = 1"},
		{"unknown key", "[grid]\ncolumns = 4"},
		{"zero width", "[grid]\nbase_width = 0"},
		{"negative height", "[grid]\ndefault_row_height = -1"},
		{"no cols", "[grid]\ndefault_number_of_cols = 0"},
		{"no rows", "[grid]\ndefault_number_of_rows = 0"},
		{"empty addr", "[server]\naddr = \"\""},
		{"zero ttl", "[server]\nsession_ttl = \"0s\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadResolvesPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`palette = "palette.yaml"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(dir, "palette.yaml"); cfg.Palette != want {
		t.Errorf("Palette = %q, want %q", cfg.Palette, want)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Grid != Default().Grid {
		t.Errorf("Resolve() without files = %+v, want defaults", cfg.Grid)
	}

	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[grid]\ndefault_number_of_cols = 6"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Grid.DefaultNumberOfCols != 6 {
		t.Errorf("DefaultNumberOfCols = %d, want 6", cfg.Grid.DefaultNumberOfCols)
	}
}

func TestGridOverride(t *testing.T) {
	base := Default().Grid
	got := base.Override(Grid{DefaultNumberOfCols: 6, DefaultRowHeight: 40})
	want := Grid{BaseWidth: 1200, DefaultRowHeight: 40, DefaultNumberOfRows: 1, DefaultNumberOfCols: 6}
	if got != want {
		t.Errorf("Override() = %+v, want %+v", got, want)
	}
	if got := base.Override(Grid{}); got != base {
		t.Errorf("Override(zero) = %+v, want %+v", got, base)
	}
}
