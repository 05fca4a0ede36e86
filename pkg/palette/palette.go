// Package palette assigns display colors to sample groups.
//
// A [Palette] is a fixed, bounded list of qualitative colors. A [ColorMap]
// assigns palette colors to labels in first-seen order, wrapping around when
// there are more labels than colors:
//
//	m := palette.Build([]string{"well-A", "well-B", "well-A"}, palette.Tab10)
//	m.Color("well-A") // "#1f77b4"
//	m.Color("well-B") // "#ff7f0e"
//
// A ColorMap is a plain value owned by whoever built it; there is no
// package-level mapping state.
package palette

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered list of colors.
type Palette struct {
	name   string
	colors []colorful.Color
}

// New creates a palette from hex color strings ("#rrggbb" or "#rgb").
func New(name string, hexes ...string) (Palette, error) {
	if len(hexes) == 0 {
		return Palette{}, fmt.Errorf("palette %q: no colors", name)
	}
	colors := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %q: color %d: %w", name, i, err)
		}
		colors[i] = c
	}
	return Palette{name: name, colors: colors}, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, hexes ...string) Palette {
	p, err := New(name, hexes...)
	if err != nil {
		panic(err)
	}
	return p
}

// Built-in qualitative palettes (matplotlib tab10, tab20 and Set2).
var (
	Tab10 = MustNew("tab10",
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf")

	Tab20 = MustNew("tab20",
		"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
		"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
		"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
		"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5")

	Set2 = MustNew("set2",
		"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3",
		"#a6d854", "#ffd92f", "#e5c494", "#b3b3b3")
)

// Default is the palette used when none is configured.
var Default = Tab10

var builtin = map[string]Palette{
	"tab10": Tab10,
	"tab20": Tab20,
	"set2":  Set2,
}

// ByName returns a built-in palette. Names are case-insensitive; "" yields
// Default.
func ByName(name string) (Palette, error) {
	if name == "" {
		return Default, nil
	}
	p, ok := builtin[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q (must be one of: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the built-in palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Name returns the palette name.
func (p Palette) Name() string { return p.name }

// Len returns the number of colors.
func (p Palette) Len() int { return len(p.colors) }

// At returns color i, wrapping around the palette.
func (p Palette) At(i int) colorful.Color {
	n := len(p.colors)
	return p.colors[((i%n)+n)%n]
}

// Hex returns color i as "#rrggbb", wrapping around the palette.
func (p Palette) Hex(i int) string { return p.At(i).Hex() }
