package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridcanvas/pkg/config"
	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/interaction"
)

// Action names a step kind.
type Action string

const (
	ActionDrag   Action = "drag"
	ActionDrop   Action = "drop"
	ActionLeave  Action = "leave"
	ActionSelect Action = "select"
	ActionClear  Action = "clear"
	ActionResize Action = "resize"
)

// Expect is the outcome a step asserts.
type Expect string

const (
	ExpectAny      Expect = ""
	ExpectOK       Expect = "ok"
	ExpectRejected Expect = "rejected"
)

// Step is one scripted gesture.
type Step struct {
	Action    Action    `toml:"action"`
	Item      string    `toml:"item"`
	X         float64   `toml:"x"`
	Y         float64   `toml:"y"`
	Component string    `toml:"component"`
	Direction string    `toml:"direction"`
	Positions []float64 `toml:"positions"`
	Expect    Expect    `toml:"expect"`
}

// Script is a parsed interaction script.
type Script struct {
	Name string `toml:"name"`
	// Grid overrides the non-zero fields of the configured grid.
	Grid  *config.Grid `toml:"grid"`
	Steps []Step       `toml:"step"`
}

// GridConfig returns base with the script's grid overrides applied.
func (s *Script) GridConfig(base config.Grid) config.Grid {
	if s.Grid == nil {
		return base
	}
	return base.Override(*s.Grid)
}

// Validate checks that every step carries the fields its action needs.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New(errors.ErrCodeInvalidScript, "script has no steps")
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Expect {
	case ExpectAny, ExpectOK, ExpectRejected:
	default:
		return errors.New(errors.ErrCodeInvalidScript, "expect must be ok or rejected, got %q", st.Expect)
	}

	switch st.Action {
	case ActionDrag, ActionDrop:
		if st.Item == "" {
			return errors.New(errors.ErrCodeInvalidScript, "%s needs an item", st.Action)
		}
	case ActionSelect:
		if st.Component == "" {
			return errors.New(errors.ErrCodeInvalidScript, "select needs a component")
		}
	case ActionResize:
		if st.Component == "" {
			return errors.New(errors.ErrCodeInvalidScript, "resize needs a component")
		}
		if !interaction.Direction(st.Direction).Valid() {
			return errors.New(errors.ErrCodeInvalidScript, "resize direction must be left or right, got %q", st.Direction)
		}
		if len(st.Positions) == 0 {
			return errors.New(errors.ErrCodeInvalidScript, "resize needs at least one position")
		}
	case ActionLeave, ActionClear:
	default:
		return errors.New(errors.ErrCodeInvalidScript, "unknown action %q", st.Action)
	}
	return nil
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	var s Script
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidScript, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "read script %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}
