package render

import (
	"fmt"
	"math"
)

// Markers lists the supported marker codes. Unknown codes draw as "o".
var Markers = []string{"o", ".", "s", "^", "v", "<", ">", "D", "d", "p", "h", "*", "+", "x"}

// markerRadius converts a marker area in points squared to a radius in
// pixels.
func markerRadius(size float64) float64 {
	if size <= 0 || math.IsNaN(size) {
		size = fallbackSize
	}
	return math.Sqrt(size) * 0.7
}

// Marker draws s's marker centered at p.
func (c *Canvas) Marker(p Point, s Sample) {
	r := markerRadius(s.Size)
	fill := Fill(s.Color, s.Alpha)
	edge := Stroke("#222222", 0.6)

	switch s.Marker {
	case ".":
		c.circle(p, r/2, fill, edge)
	case "s":
		c.Polygon(regular(p, r*1.25, 4, math.Pi/4), fill, edge)
	case "^":
		c.Polygon(regular(p, r*1.2, 3, -math.Pi/2), fill, edge)
	case "v":
		c.Polygon(regular(p, r*1.2, 3, math.Pi/2), fill, edge)
	case "<":
		c.Polygon(regular(p, r*1.2, 3, math.Pi), fill, edge)
	case ">":
		c.Polygon(regular(p, r*1.2, 3, 0), fill, edge)
	case "D":
		c.Polygon(regular(p, r*1.2, 4, 0), fill, edge)
	case "d":
		c.Polygon([]Point{{p.X, p.Y - r*1.2}, {p.X + r*0.7, p.Y}, {p.X, p.Y + r*1.2}, {p.X - r*0.7, p.Y}}, fill, edge)
	case "p":
		c.Polygon(regular(p, r*1.1, 5, -math.Pi/2), fill, edge)
	case "h":
		c.Polygon(regular(p, r*1.1, 6, -math.Pi/2), fill, edge)
	case "*":
		c.Polygon(star(p, r*1.4, r*0.6), fill, edge)
	case "+":
		line := Stroke(s.Color, 1.6)
		c.Line(Point{p.X - r, p.Y}, Point{p.X + r, p.Y}, line)
		c.Line(Point{p.X, p.Y - r}, Point{p.X, p.Y + r}, line)
	case "x":
		line := Stroke(s.Color, 1.6)
		d := r * 0.8
		c.Line(Point{p.X - d, p.Y - d}, Point{p.X + d, p.Y + d}, line)
		c.Line(Point{p.X - d, p.Y + d}, Point{p.X + d, p.Y - d}, line)
	default:
		c.circle(p, r, fill, edge)
	}
}

func (c *Canvas) circle(p Point, r float64, attrs ...string) {
	d := fmt.Sprintf("M%s %s a%s %s 0 1 0 %s 0 a%s %s 0 1 0 -%s 0 Z",
		num(p.X-r), num(p.Y), num(r), num(r), num(2*r), num(r), num(r), num(2*r))
	c.svg.Path(d, attrs...)
}

// regular returns the vertices of a regular n-gon with circumradius r.
func regular(c Point, r float64, n int, phase float64) []Point {
	ps := make([]Point, n)
	for i := range ps {
		a := phase + 2*math.Pi*float64(i)/float64(n)
		ps[i] = Point{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
	}
	return ps
}

func star(c Point, outer, inner float64) []Point {
	ps := make([]Point, 10)
	for i := range ps {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + math.Pi*float64(i)/5
		ps[i] = Point{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
	}
	return ps
}
