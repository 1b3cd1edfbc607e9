// Package palette defines the components that can be dragged onto a canvas.
//
// Palettes are YAML files listing named items with their pixel size, the
// grid area they consume and how they resize:
//
//	items:
//	  - name: heading
//	    size: {width: 400, height: 80}
//	    consumedCols: 4
//	    minSpace: 2
//	  - name: image
//	    size: {width: 300, height: 200}
//	    consumedCols: 3
//	    layoutMode: fixed
//	    props:
//	      src: logo.png
package palette

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gridcanvas/pkg/design"
	"github.com/matzehuels/gridcanvas/pkg/errors"
	"github.com/matzehuels/gridcanvas/pkg/interaction"
)

// Item is one palette entry.
type Item struct {
	Name         string            `yaml:"name"`
	Props        map[string]any    `yaml:"props,omitempty"`
	Size         interaction.Size  `yaml:"size"`
	ConsumedRows int               `yaml:"consumedRows,omitempty"`
	ConsumedCols int               `yaml:"consumedCols"`
	MinSpace     int               `yaml:"minSpace,omitempty"`
	LayoutMode   design.LayoutMode `yaml:"layoutMode,omitempty"`
}

// DragItem converts the entry into the payload of a drag.
func (it Item) DragItem() interaction.DragItem {
	return interaction.DragItem{
		Name:         it.Name,
		Props:        it.Props,
		Size:         it.Size,
		ConsumedRows: it.ConsumedRows,
		ConsumedCols: it.ConsumedCols,
		MinSpace:     it.MinSpace,
		LayoutMode:   it.LayoutMode,
	}
}

// Palette is an ordered list of items with unique names.
type Palette struct {
	Items []Item `yaml:"items"`
}

// Lookup returns the item with the given name.
func (p *Palette) Lookup(name string) (Item, bool) {
	for _, it := range p.Items {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}

// Names returns the item names in palette order.
func (p *Palette) Names() []string {
	names := make([]string, len(p.Items))
	for i, it := range p.Items {
		names[i] = it.Name
	}
	return names
}

// Default returns the built-in palette.
func Default() *Palette {
	return &Palette{Items: []Item{
		{Name: "heading", Size: interaction.Size{Width: 400, Height: 80}, ConsumedRows: 1, ConsumedCols: 4, MinSpace: 2, LayoutMode: design.LayoutGrid},
		{Name: "text", Size: interaction.Size{Width: 600, Height: 100}, ConsumedRows: 1, ConsumedCols: 6, MinSpace: 2, LayoutMode: design.LayoutGrid},
		{Name: "table", Size: interaction.Size{Width: 1200, Height: 200}, ConsumedRows: 1, ConsumedCols: 12, MinSpace: 6, LayoutMode: design.LayoutGrid},
		{Name: "image", Size: interaction.Size{Width: 300, Height: 150}, ConsumedRows: 1, ConsumedCols: 3, MinSpace: 1, LayoutMode: design.LayoutFixed},
		{Name: "signature", Size: interaction.Size{Width: 200, Height: 60}, ConsumedRows: 1, ConsumedCols: 2, MinSpace: 1, LayoutMode: design.LayoutFixed},
	}}
}

// Validate checks names, counts and layout modes, and fills defaults for
// omitted fields: one consumed row, a MinSpace of one and grid layout.
func (p *Palette) Validate() error {
	seen := make(map[string]bool, len(p.Items))
	for i := range p.Items {
		it := &p.Items[i]
		if err := errors.ValidateName(errors.ErrCodeInvalidPalette, it.Name); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if seen[it.Name] {
			return errors.New(errors.ErrCodeInvalidPalette, "duplicate item %q", it.Name)
		}
		seen[it.Name] = true

		if it.ConsumedRows == 0 {
			it.ConsumedRows = 1
		}
		if it.MinSpace == 0 {
			it.MinSpace = 1
		}
		if it.LayoutMode == "" {
			it.LayoutMode = design.LayoutGrid
		}
		if err := errors.ValidateAtLeast(errors.ErrCodeInvalidPalette, it.Name+".consumedCols", it.ConsumedCols, 1); err != nil {
			return err
		}
		if err := errors.ValidateAtLeast(errors.ErrCodeInvalidPalette, it.Name+".consumedRows", it.ConsumedRows, 1); err != nil {
			return err
		}
		if it.MinSpace < 1 || it.MinSpace > it.ConsumedCols {
			return errors.New(errors.ErrCodeInvalidPalette, "%s.minSpace must be between 1 and %d, got %d", it.Name, it.ConsumedCols, it.MinSpace)
		}
		if !it.LayoutMode.Valid() {
			return errors.New(errors.ErrCodeInvalidPalette, "%s.layoutMode must be grid or fixed, got %q", it.Name, it.LayoutMode)
		}
		if err := errors.ValidatePositive(errors.ErrCodeInvalidPalette, it.Name+".size.height", it.Size.Height); err != nil {
			return err
		}
	}
	if len(p.Items) == 0 {
		return errors.New(errors.ErrCodeInvalidPalette, "palette has no items")
	}
	return nil
}

// Load reads a palette file.
func Load(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPalette, err, "open palette %s", path)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a palette. Unknown fields are rejected.
func Parse(r io.Reader) (*Palette, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPalette, err, "read palette")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Palette
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidPalette, err, "decode palette")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Marshal encodes the palette as YAML.
func (p *Palette) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
