// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package palette

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/SoftbearStudios/tilegen"
	"gopkg.in/yaml.v3"
)

// Table maps a tile type (e.g. "grass") to its palette.
type Table map[string]Spec

// Presets returns the built-in tile types.
func Presets() Table {
	return Table{
		"dirt":  preset("dirt", []ColorVec{norm(180, 120, 50), norm(150, 100, 40), norm(120, 80, 30)}, 0.1, 0.3, 0.6),
		"grass": preset("grass", []ColorVec{norm(120, 80, 30), norm(150, 100, 40), norm(0, 200, 0), norm(0, 150, 0)}, 0.1, 0.15, 0.25, 0.5),
		"water": preset("water", []ColorVec{norm(0, 0, 255), norm(0, 0, 200), norm(0, 0, 150)}, 0.1, 0.3, 0.6),
		"sand":  preset("sand", []ColorVec{norm(255, 255, 0), norm(200, 200, 0), norm(150, 150, 0)}, 0.1, 0.3, 0.6),
		"stone": preset("stone", []ColorVec{norm(100, 100, 100), norm(80, 80, 80), norm(60, 60, 60)}, 0.1, 0.3, 0.6),
	}
}

func norm(r, g, b float32) ColorVec {
	return ColorVec{r / 255, g / 255, b / 255}
}

func preset(name string, vecs []ColorVec, weights ...float64) Spec {
	colors := make([]Color, len(vecs))
	for i, vec := range vecs {
		colors[i] = vec.Color()
	}
	spec, err := New(name, colors, weights)
	if err != nil {
		panic(err)
	}
	return spec
}

// Lookup returns the palette of a tile type.
func (table Table) Lookup(name string) (Spec, error) {
	spec, ok := table[name]
	if !ok {
		return Spec{}, tilegen.InvalidArgument("unknown tile type %q (known: %s)", name, strings.Join(table.Names(), ", "))
	}
	return spec, nil
}

// Names returns the tile types in sorted order.
func (table Table) Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new table with other's entries overriding table's.
func (table Table) Merge(other Table) Table {
	merged := make(Table, len(table)+len(other))
	for name, spec := range table {
		merged[name] = spec
	}
	for name, spec := range other {
		merged[name] = spec
	}
	return merged
}

// Validate validates every palette, naming the first bad one.
func (table Table) Validate() error {
	for _, name := range table.Names() {
		if err := table[name].Validate(); err != nil {
			return fmt.Errorf("tile type %q: %w", name, err)
		}
	}
	return nil
}

// LoadTable reads a palette table from a .yaml, .yml or .json file. The file maps tile
// types to entry lists:
//
//	grass:
//	  - {color: "#785028", weight: 0.1}
//	  - {color: [0, 200, 0], weight: 0.9}
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette table: %w", err)
	}

	var raw map[string][]Entry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("palette table %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse palette table %s: %w", path, err)
	}

	table := make(Table, len(raw))
	for name, entries := range raw {
		table[name] = Spec{Name: name, Entries: entries}
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
