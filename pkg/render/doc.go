// Package render draws hydrochemical diagrams as SVG and converts them to
// other formats.
//
// # Overview
//
// The per-diagram renderers live in subpackages and share the drawing
// helpers defined here:
//
//   - [piper]: cation and anion triangles projected into a diamond
//   - [durov]: triangles projected into a square, with pH and TDS panels
//   - [stiff]: one polygon per sample
//   - [schoeller]: semi-log concentration lines
//
// Every renderer takes a normalized table (see package normalize) whose rows
// are already complete for the diagram, and reads the display columns
// (Label, Color, Marker, Size, Alpha) from it. Renderers never filter rows.
//
//	svg := piper.RenderSVG(t, render.WithTitle("Wells"))
//	png, err := render.ToPNG(svg, 2.0)
//
// # Format Conversion
//
// [ToPNG] uses rsvg-convert when it is installed and otherwise rasterizes in
// process with oksvg; the in-process path does not draw text. [ToPDF]
// always requires rsvg-convert.
//
// [piper]: github.com/matzehuels/hydrochem/pkg/render/piper
// [durov]: github.com/matzehuels/hydrochem/pkg/render/durov
// [stiff]: github.com/matzehuels/hydrochem/pkg/render/stiff
// [schoeller]: github.com/matzehuels/hydrochem/pkg/render/schoeller
package render
