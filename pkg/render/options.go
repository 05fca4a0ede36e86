package render

import "github.com/matzehuels/hydrochem/pkg/chem"

// Options holds the settings shared by all renderers.
type Options struct {
	Width, Height int
	Title         string
	Unit          chem.Unit // Unit of the input concentrations
	Legend        bool
}

// Option configures a renderer.
type Option func(*Options)

// WithSize sets the canvas size in pixels. Non-positive values keep the
// renderer's default.
func WithSize(w, h int) Option {
	return func(o *Options) {
		if w > 0 {
			o.Width = w
		}
		if h > 0 {
			o.Height = h
		}
	}
}

// WithTitle sets the diagram title.
func WithTitle(s string) Option { return func(o *Options) { o.Title = s } }

// WithUnit declares the unit of the input concentrations.
func WithUnit(u chem.Unit) Option {
	return func(o *Options) {
		if u != "" {
			o.Unit = u
		}
	}
}

// WithoutLegend suppresses the label legend.
func WithoutLegend() Option { return func(o *Options) { o.Legend = false } }

// NewOptions applies opts over the given default size.
func NewOptions(width, height int, opts ...Option) Options {
	o := Options{Width: width, Height: height, Unit: chem.DefaultUnit, Legend: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
