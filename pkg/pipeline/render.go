package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/hydrochem/pkg/diagram"
	"github.com/matzehuels/hydrochem/pkg/errors"
	pkgio "github.com/matzehuels/hydrochem/pkg/io"
	"github.com/matzehuels/hydrochem/pkg/render"
	"github.com/matzehuels/hydrochem/pkg/render/durov"
	"github.com/matzehuels/hydrochem/pkg/render/piper"
	"github.com/matzehuels/hydrochem/pkg/render/schoeller"
	"github.com/matzehuels/hydrochem/pkg/render/stiff"
	"github.com/matzehuels/hydrochem/pkg/table"
)

var renderers = map[diagram.Kind]func(*table.Table, ...render.Option) []byte{
	diagram.Piper:     piper.RenderSVG,
	diagram.Durov:     durov.RenderSVG,
	diagram.Stiff:     stiff.RenderSVG,
	diagram.Schoeller: schoeller.RenderSVG,
}

// RenderSVG draws the rows of t as a diagram of kind k.
func RenderSVG(k diagram.Kind, t *table.Table, opts ...render.Option) ([]byte, error) {
	fn, ok := renderers[k]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "unknown diagram %q", k)
	}
	return fn(t, opts...), nil
}

// Render generates output artifacts in the requested formats from the
// selected rows t. opts must have passed ValidateAndSetDefaults.
func Render(t *table.Table, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var svg []byte
	needSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = RenderSVG(opts.DiagramKind(), t, renderOptions(opts)...)
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = needSVG()
		case FormatPNG:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPNG(data, DefaultPNGScale)
			}
		case FormatPDF:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPDF(data)
			}
		case FormatJSON:
			var buf bytes.Buffer
			err = pkgio.WriteJSON(&buf, t)
			data = buf.Bytes()
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderOptions maps pipeline options onto renderer options.
func renderOptions(opts Options) []render.Option {
	return []render.Option{
		render.WithSize(opts.Width, opts.Height),
		render.WithTitle(opts.Title),
		render.WithUnit(opts.InputUnit()),
	}
}
