// Package schoeller renders Schoeller semi-logarithmic diagrams: one line per
// sample across the major ions, concentrations in meq/L on a log axis.
package schoeller

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/render"
	"github.com/matzehuels/hydrochem/pkg/table"
)

// Default canvas size.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Ions are the x-axis categories in drawing order.
var Ions = []chem.Ion{chem.Ca, chem.Mg, chem.Na, chem.K, chem.Cl, chem.SO4, chem.HCO3}

// Values returns a sample's concentrations in meq/L in Ions order. Values
// that cannot be drawn on a log axis are NaN.
func Values(s render.Sample) []float64 {
	out := make([]float64, len(Ions))
	for i, ion := range Ions {
		v := s.Meq[ion.Symbol]
		if !(v > 0) {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

// Decades returns the log10 bounds of the y axis covering all samples.
func Decades(samples []render.Sample) (lo, hi int) {
	var logs []float64
	for _, s := range samples {
		for _, v := range Values(s) {
			if !math.IsNaN(v) {
				logs = append(logs, math.Log10(v))
			}
		}
	}
	if len(logs) == 0 {
		return -1, 1
	}
	minLog, maxLog := stats.Bounds(logs)
	lo, hi = int(math.Floor(minLog)), int(math.Ceil(maxLog))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// RenderSVG draws every row of t.
func RenderSVG(t *table.Table, opts ...render.Option) []byte {
	o := render.NewOptions(DefaultWidth, DefaultHeight, opts...)
	samples := render.Samples(t, o.Unit)

	c := render.NewCanvas(o.Width, o.Height)
	c.Title(o.Title)

	lo, hi := Decades(samples)
	top, left, right, bottom := 50.0, 70.0, 160.0, 50.0
	f := render.NewFrame(0, float64(lo), float64(len(Ions)-1), float64(hi),
		left, top, float64(o.Width)-left-right, float64(o.Height)-top-bottom, false)

	drawAxes(c, f, lo, hi)
	for _, s := range samples {
		c.SampleGroup(s)
		var run []render.Point
		flush := func() {
			c.Polyline(run, render.Stroke(s.Color, 1.5), fmt.Sprintf(`stroke-opacity="%.2f"`, s.Alpha))
			run = run[:0]
		}
		for i, v := range Values(s) {
			if math.IsNaN(v) {
				flush()
				continue
			}
			p := f.Map(render.Point{X: float64(i), Y: math.Log10(v)})
			run = append(run, p)
			c.Marker(p, s)
		}
		flush()
		c.Gend()
	}

	if o.Legend {
		c.Legend(render.Point{X: float64(o.Width) - right + 20, Y: top + 10}, samples)
	}
	return c.Bytes()
}

func drawAxes(c *render.Canvas, f render.Frame, lo, hi int) {
	n := float64(len(Ions) - 1)
	c.Outline(f.MapAll([]render.Point{{X: 0, Y: float64(lo)}, {X: n, Y: float64(lo)}, {X: n, Y: float64(hi)}, {X: 0, Y: float64(hi)}}))

	for d := lo; d <= hi; d++ {
		y := float64(d)
		if d > lo && d < hi {
			c.Line(f.Map(render.Point{X: 0, Y: y}), f.Map(render.Point{X: n, Y: y}), render.Stroke("#bbbbbb", 0.8))
		}
		for k := 2; k < 10 && d < hi; k++ {
			ym := y + math.Log10(float64(k))
			c.Line(f.Map(render.Point{X: 0, Y: ym}), f.Map(render.Point{X: n, Y: ym}), render.Stroke("#e5e5e5", 0.5))
		}
		p := f.Map(render.Point{X: 0, Y: y})
		c.Text(p.Add(render.Point{X: -6, Y: 4}), render.TickLabel(math.Pow(10, y)), `text-anchor="end"`, `font-size="10"`)
	}

	for i, ion := range Ions {
		x := float64(i)
		if i > 0 && i < len(Ions)-1 {
			c.Line(f.Map(render.Point{X: x, Y: float64(lo)}), f.Map(render.Point{X: x, Y: float64(hi)}), render.Stroke("#e5e5e5", 0.5))
		}
		p := f.Map(render.Point{X: x, Y: float64(lo)})
		c.Text(p.Add(render.Point{X: 0, Y: 18}), ion.Symbol, `text-anchor="middle"`)
	}

	mid := f.Map(render.Point{X: 0, Y: float64(lo+hi) / 2})
	at := render.Point{X: mid.X - 52, Y: mid.Y}
	c.Text(at, "meq/L", `text-anchor="middle"`, fmt.Sprintf(`transform="rotate(-90 %.1f %.1f)"`, at.X, at.Y))
}
