// Package piper renders Piper trilinear diagrams.
//
// Each sample appears three times: in the cation triangle (Ca, Mg, Na+K), in
// the anion triangle (HCO3+CO3, Cl, SO4) and, combining both, in the central
// diamond. Positions use meq/L percentages.
package piper

import (
	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/render"
	"github.com/matzehuels/hydrochem/pkg/table"
)

// Default canvas size.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

// gap separates the two triangles, as a fraction of their side.
const gap = 0.2

var h = render.TriangleHeight

var (
	cations = render.Triangle{
		A: render.Point{X: 0, Y: 0},
		B: render.Point{X: 1, Y: 0},
		C: render.Point{X: 0.5, Y: h},
	}
	anions = render.Triangle{
		A: render.Point{X: 1 + gap, Y: 0},
		B: render.Point{X: 2 + gap, Y: 0},
		C: render.Point{X: 1.5 + gap, Y: h},
	}
	diamond = render.Quad{
		Origin: render.Point{X: 1 + gap/2, Y: gap * h},
		U:      render.Point{X: -0.5, Y: h},
		V:      render.Point{X: 0.5, Y: h},
	}
)

// Positions are a sample's locations in diagram space.
type Positions struct {
	Cation, Anion, Diamond render.Point
}

// Project places a composition on the diagram.
func Project(c chem.Composition) Positions {
	ca, mg, nak := c.CationPercents()
	alk, cl, so4 := c.AnionPercents()
	return Positions{
		// Corner order: Ca, Na+K, Mg.
		Cation: cations.At(ca, nak, mg),
		// Corner order: HCO3+CO3, Cl, SO4.
		Anion:   anions.At(alk, cl, so4),
		Diamond: diamond.At((ca+mg)/100, (cl+so4)/100),
	}
}

// RenderSVG draws every row of t. Rows must carry the eight major ions.
func RenderSVG(t *table.Table, opts ...render.Option) []byte {
	o := render.NewOptions(DefaultWidth, DefaultHeight, opts...)
	samples := render.Samples(t, o.Unit)

	c := render.NewCanvas(o.Width, o.Height)
	c.Title(o.Title)

	top := 50.0
	f := render.NewFrame(0, 0, 2+gap, (2+gap)*h,
		40, top, float64(o.Width)-80, float64(o.Height)-top-50, true)

	drawFrame(c, f)
	for _, s := range samples {
		pos := Project(s.Comp)
		c.SampleGroup(s)
		c.Marker(f.Map(pos.Cation), s)
		c.Marker(f.Map(pos.Anion), s)
		c.Marker(f.Map(pos.Diamond), s)
		c.Gend()
	}

	if o.Legend {
		c.Legend(render.Point{X: 30, Y: top + 10}, samples)
	}
	return c.Bytes()
}

func drawFrame(c *render.Canvas, f render.Frame) {
	for _, tri := range []render.Triangle{cations, anions} {
		c.Grid(f.MapSegs(tri.Grid(0.2)))
		c.Outline(f.MapAll(tri.Outline()))
	}
	c.Grid(f.MapSegs(diamond.Grid(0.2)))
	c.Outline(f.MapAll(diamond.Outline()))

	below := `text-anchor="middle"`
	offset := func(p render.Point, dx, dy float64) render.Point {
		q := f.Map(p)
		return render.Point{X: q.X + dx, Y: q.Y + dy}
	}
	c.Text(offset(cations.A, 0, 16), "Ca", below)
	c.Text(offset(cations.B, 0, 16), "Na+K", below)
	c.Text(offset(cations.C, 0, -8), "Mg", below)
	c.Text(offset(anions.A, 0, 16), "HCO3+CO3", below)
	c.Text(offset(anions.B, 0, 16), "Cl", below)
	c.Text(offset(anions.C, 0, -8), "SO4", below)

	left := diamond.At(1, 0.5)
	right := diamond.At(0.5, 1)
	c.Text(offset(left, -14, 0), "Cl+SO4", `text-anchor="end"`)
	c.Text(offset(right, 14, 0), "Ca+Mg", `text-anchor="start"`)

	for i := 1; i < 5; i++ {
		v := float64(i) / 5
		label := render.TickLabel(100 * v)
		c.Text(offset(cations.At(1-v, v, 0), 0, 30), label, below, `font-size="9"`)
		c.Text(offset(anions.At(1-v, v, 0), 0, 30), label, below, `font-size="9"`)
	}
}
