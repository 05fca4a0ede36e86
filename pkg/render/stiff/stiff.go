// Package stiff renders Stiff pattern diagrams, one panel per sample.
//
// Cations extend left of the zero axis (Na+K, Ca, Mg from top to bottom)
// and anions right (Cl, HCO3+CO3, SO4), in meq/L. All panels share one
// horizontal scale so shapes are comparable.
package stiff

import (
	"math"

	"github.com/aclements/go-moremath/scale"

	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/palette"
	"github.com/matzehuels/hydrochem/pkg/render"
	"github.com/matzehuels/hydrochem/pkg/table"
)

// Default canvas size.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

// fillLighten is how far a panel's fill is blended toward white from its
// outline color.
const fillLighten = 0.45

var (
	cationNames = [3]string{"Na+K", "Ca", "Mg"}
	anionNames  = [3]string{"Cl", "HCO3+CO3", "SO4"}
)

// Shape returns the polygon of a composition in meq/L. Cations have
// negative x; y is the row, 0 (top) to 2 (bottom).
func Shape(c chem.Composition) []render.Point {
	return []render.Point{
		{X: -c.NaK, Y: 0},
		{X: -c.Ca, Y: 1},
		{X: -c.Mg, Y: 2},
		{X: c.SO4, Y: 2},
		{X: c.HCO3CO3, Y: 1},
		{X: c.Cl, Y: 0},
	}
}

// Extent returns the shared half-width of all panels in meq/L, rounded up
// to a readable value.
func Extent(samples []render.Sample) float64 {
	m := 0.0
	for _, s := range samples {
		for _, p := range Shape(s.Comp) {
			m = math.Max(m, math.Abs(p.X))
		}
	}
	if m <= 0 {
		m = 1
	}
	ls := scale.Linear{Min: 0, Max: m}
	ls.Nice(scale.TickOptions{Max: 4})
	return ls.Max
}

// Grid returns the number of panel columns and rows for n samples.
func Grid(n int) (cols, rows int) {
	if n <= 0 {
		return 1, 1
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}

// RenderSVG draws one panel per row of t.
func RenderSVG(t *table.Table, opts ...render.Option) []byte {
	o := render.NewOptions(DefaultWidth, DefaultHeight, opts...)
	samples := render.Samples(t, o.Unit)

	c := render.NewCanvas(o.Width, o.Height)
	c.Title(o.Title)

	ext := Extent(samples)
	cols, rows := Grid(len(samples))
	top, margin := 50.0, 20.0
	cellW := (float64(o.Width) - 2*margin) / float64(cols)
	cellH := (float64(o.Height) - top - margin) / float64(rows)

	for i, s := range samples {
		left := margin + float64(i%cols)*cellW
		y := top + float64(i/cols)*cellH
		drawPanel(c, s, ext, left, y, cellW, cellH)
	}
	return c.Bytes()
}

func drawPanel(c *render.Canvas, s render.Sample, ext, left, top, w, h float64) {
	const (
		pad    = 56.0 // Room for ion names on both sides
		header = 22.0
		footer = 26.0
	)
	f := render.NewFrame(-ext, -2, ext, 0,
		left+pad, top+header, w-2*pad, h-header-footer, false)
	row := func(x, r float64) render.Point { return f.Map(render.Point{X: x, Y: -r}) }

	mid := `text-anchor="middle"`
	small := `font-size="10"`
	c.Text(render.Point{X: left + w/2, Y: top + 14}, s.Name, mid, `font-weight="bold"`)

	c.Line(row(0, 0), row(0, 2), render.Stroke("#333333", 1))
	for r := 0; r < 3; r++ {
		c.Line(row(-ext, float64(r)), row(ext, float64(r)), render.Stroke("#bbbbbb", 0.6), `stroke-dasharray="3,3"`)
		c.Text(row(-ext, float64(r)).Add(render.Point{X: -4, Y: 4}), cationNames[r], `text-anchor="end"`, small)
		c.Text(row(ext, float64(r)).Add(render.Point{X: 4, Y: 4}), anionNames[r], `text-anchor="start"`, small)
	}

	shape := Shape(s.Comp)
	pts := make([]render.Point, len(shape))
	for i, p := range shape {
		pts[i] = row(p.X, p.Y)
	}
	c.SampleGroup(s)
	c.Polygon(pts, render.Fill(palette.Lighten(s.Color, fillLighten), s.Alpha), render.Stroke(s.Color, 1.5))
	c.Gend()

	axis := row(0, 2).Y + 14
	for _, v := range []float64{-ext, 0, ext} {
		c.Text(render.Point{X: row(v, 2).X, Y: axis}, render.TickLabel(math.Abs(v)), mid, small)
	}
	c.Text(render.Point{X: left + w/2, Y: axis + 12}, "meq/L", mid, small)
}
