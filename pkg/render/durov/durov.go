// Package durov renders expanded Durov diagrams.
//
// The cation triangle (Ca, Mg, Na+K) sits left of a central square and the
// anion triangle (HCO3+CO3, Cl, SO4) above it. A sample's square position
// combines its projections from both triangles. Side panels plot pH against
// the cation projection and TDS against the anion projection.
package durov

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"

	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/render"
	"github.com/matzehuels/hydrochem/pkg/table"
)

// Default canvas size.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

const (
	gap   = 0.12 // Space between the square and the side panels
	panel = 0.6  // Depth of the pH and TDS panels
)

var h = render.TriangleHeight

var (
	cations = render.Triangle{
		A: render.Point{X: 0, Y: 1},
		B: render.Point{X: 0, Y: 0},
		C: render.Point{X: -h, Y: 0.5},
	}
	anions = render.Triangle{
		A: render.Point{X: 0, Y: 1},
		B: render.Point{X: 1, Y: 1},
		C: render.Point{X: 0.5, Y: 1 + h},
	}
	square = render.Quad{
		U: render.Point{X: 1, Y: 0},
		V: render.Point{X: 0, Y: 1},
	}
	phPanel = render.Quad{
		Origin: render.Point{X: 1 + gap, Y: 0},
		U:      render.Point{X: panel, Y: 0},
		V:      render.Point{X: 0, Y: 1},
	}
	tdsPanel = render.Quad{
		Origin: render.Point{X: 0, Y: -gap},
		U:      render.Point{X: 1, Y: 0},
		V:      render.Point{X: 0, Y: -panel},
	}
)

// Positions are a sample's locations in diagram space.
type Positions struct {
	Cation, Anion, Square render.Point
}

// Project places a composition on the diagram.
func Project(c chem.Composition) Positions {
	ca, mg, nak := c.CationPercents()
	alk, cl, so4 := c.AnionPercents()
	cat := cations.At(ca, nak, mg)
	an := anions.At(alk, cl, so4)
	return Positions{
		Cation: cat,
		Anion:  an,
		Square: square.At(an.X, cat.Y),
	}
}

// Axes are the value ranges of the side panels.
type Axes struct {
	PH, TDS scale.Linear
}

// NewAxes fits the pH and TDS panels to the samples. pH spans at least
// 6 to 9; TDS starts at zero.
func NewAxes(samples []render.Sample) Axes {
	var phs, tds []float64
	for _, s := range samples {
		if !math.IsNaN(s.PH) {
			phs = append(phs, s.PH)
		}
		if !math.IsNaN(s.TDS) {
			tds = append(tds, s.TDS)
		}
	}

	a := Axes{
		PH:  scale.Linear{Min: 6, Max: 9},
		TDS: scale.Linear{Min: 0, Max: 1000},
	}
	if len(phs) > 0 {
		lo, hi := stats.Bounds(phs)
		a.PH.Min = math.Min(a.PH.Min, math.Floor(lo))
		a.PH.Max = math.Max(a.PH.Max, math.Ceil(hi))
	}
	if len(tds) > 0 {
		if _, hi := stats.Bounds(tds); hi > 0 {
			a.TDS.Max = hi
		}
	}
	a.TDS.Nice(scale.TickOptions{Max: 6})
	return a
}

// PHPoint returns a sample's position in the pH panel.
func (a Axes) PHPoint(p Positions, ph float64) render.Point {
	return phPanel.At(clamp01(a.PH.Map(ph)), p.Cation.Y)
}

// TDSPoint returns a sample's position in the TDS panel.
func (a Axes) TDSPoint(p Positions, tds float64) render.Point {
	return tdsPanel.At(p.Anion.X, clamp01(a.TDS.Map(tds)))
}

// RenderSVG draws every row of t. Rows must carry the eight major ions, pH
// and TDS.
func RenderSVG(t *table.Table, opts ...render.Option) []byte {
	o := render.NewOptions(DefaultWidth, DefaultHeight, opts...)
	samples := render.Samples(t, o.Unit)
	axes := NewAxes(samples)

	c := render.NewCanvas(o.Width, o.Height)
	c.Title(o.Title)

	top := 50.0
	f := render.NewFrame(-h, -gap-panel, 1+gap+panel, 1+h,
		50, top, float64(o.Width)-90, float64(o.Height)-top-40, true)

	drawFrame(c, f, axes)
	for _, s := range samples {
		pos := Project(s.Comp)
		c.SampleGroup(s)
		c.Marker(f.Map(pos.Cation), s)
		c.Marker(f.Map(pos.Anion), s)
		c.Marker(f.Map(pos.Square), s)
		if !math.IsNaN(s.PH) {
			c.Marker(f.Map(axes.PHPoint(pos, s.PH)), s)
		}
		if !math.IsNaN(s.TDS) {
			c.Marker(f.Map(axes.TDSPoint(pos, s.TDS)), s)
		}
		c.Gend()
	}

	if o.Legend {
		c.Legend(f.Map(render.Point{X: 1 + gap, Y: 1 + h}), samples)
	}
	return c.Bytes()
}

func drawFrame(c *render.Canvas, f render.Frame, a Axes) {
	for _, tri := range []render.Triangle{cations, anions} {
		c.Grid(f.MapSegs(tri.Grid(0.2)))
		c.Outline(f.MapAll(tri.Outline()))
	}
	for _, q := range []render.Quad{square, phPanel, tdsPanel} {
		c.Outline(f.MapAll(q.Outline()))
	}
	c.Grid(f.MapSegs(square.Grid(0.2)))

	at := func(p render.Point, dx, dy float64) render.Point {
		q := f.Map(p)
		return render.Point{X: q.X + dx, Y: q.Y + dy}
	}
	mid := `text-anchor="middle"`
	c.Text(at(cations.A, -8, -4), "Ca", `text-anchor="end"`)
	c.Text(at(cations.B, -8, 12), "Na+K", `text-anchor="end"`)
	c.Text(at(cations.C, -6, 4), "Mg", `text-anchor="end"`)
	c.Text(at(anions.A, -8, -4), "HCO3+CO3", `text-anchor="end"`)
	c.Text(at(anions.B, 8, -4), "Cl", `text-anchor="start"`)
	c.Text(at(anions.C, 0, -8), "SO4", mid)

	small := `font-size="9"`
	major, _ := a.PH.Ticks(scale.TickOptions{Max: 6})
	for _, v := range major {
		p := phPanel.At(a.PH.Map(v), 0)
		c.Line(f.Map(p), at(p, 0, 4), render.Stroke("#333333", 1))
		c.Text(at(p, 0, 14), render.TickLabel(v), mid, small)
	}
	c.Text(at(phPanel.At(0.5, 0), 0, 28), "pH", mid)

	major, _ = a.TDS.Ticks(scale.TickOptions{Max: 6})
	for _, v := range major {
		p := tdsPanel.At(0, a.TDS.Map(v))
		c.Line(f.Map(p), at(p, -4, 0), render.Stroke("#333333", 1))
		c.Text(at(p, -6, 3), render.TickLabel(v), `text-anchor="end"`, small)
	}
	c.Text(at(tdsPanel.At(0.5, 1), 0, 16), "TDS (mg/L)", mid)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
