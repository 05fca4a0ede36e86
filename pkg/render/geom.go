package render

import "math"

// Point is a position in diagram or canvas space.
type Point struct{ X, Y float64 }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p*k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Lerp returns the point a fraction t of the way from p to q.
func (p Point) Lerp(q Point, t float64) Point { return p.Add(q.Sub(p).Scale(t)) }

// TriangleHeight is the height of an equilateral triangle with unit sides.
var TriangleHeight = math.Sqrt(3) / 2

// Triangle is a ternary field. A, B and C are the corners where the first,
// second and third component reach 100%.
type Triangle struct{ A, B, C Point }

// At returns the position of a composition given as fractions. Fractions
// are normalized by their sum; an all-zero composition maps to the centroid.
func (t Triangle) At(a, b, c float64) Point {
	sum := a + b + c
	if sum <= 0 {
		a, b, c, sum = 1, 1, 1, 3
	}
	a, b, c = a/sum, b/sum, c/sum
	return Point{
		X: a*t.A.X + b*t.B.X + c*t.C.X,
		Y: a*t.A.Y + b*t.B.Y + c*t.C.Y,
	}
}

// Outline returns the triangle's corners.
func (t Triangle) Outline() []Point { return []Point{t.A, t.B, t.C} }

// Grid returns grid segments at every multiple of step (a fraction) for each
// of the three components, excluding the edges.
func (t Triangle) Grid(step float64) [][2]Point {
	var segs [][2]Point
	for v := step; v < 1-step/2; v += step {
		segs = append(segs,
			[2]Point{t.At(v, 1-v, 0), t.At(v, 0, 1-v)},
			[2]Point{t.At(1-v, v, 0), t.At(0, v, 1-v)},
			[2]Point{t.At(1-v, 0, v), t.At(0, 1-v, v)},
		)
	}
	return segs
}

// Quad is a parallelogram field spanned from Origin along U and V.
type Quad struct{ Origin, U, V Point }

// At returns Origin + u*U + v*V.
func (q Quad) At(u, v float64) Point {
	return q.Origin.Add(q.U.Scale(u)).Add(q.V.Scale(v))
}

// Outline returns the four corners in drawing order.
func (q Quad) Outline() []Point {
	return []Point{q.At(0, 0), q.At(1, 0), q.At(1, 1), q.At(0, 1)}
}

// Grid returns interior grid segments at every multiple of step.
func (q Quad) Grid(step float64) [][2]Point {
	var segs [][2]Point
	for v := step; v < 1-step/2; v += step {
		segs = append(segs,
			[2]Point{q.At(v, 0), q.At(v, 1)},
			[2]Point{q.At(0, v), q.At(1, v)},
		)
	}
	return segs
}

// Frame maps a data-space rectangle onto a pixel rectangle, flipping the y
// axis so that data y grows upward.
type Frame struct {
	MinX, MinY float64
	scaleX     float64
	scaleY     float64
	offX, offY float64
}

// NewFrame maps [minX,maxX]x[minY,maxY] onto the pixel box at (left, top)
// with the given size. With equal set, both axes share one scale and the
// drawing is centered in the box.
func NewFrame(minX, minY, maxX, maxY, left, top, width, height float64, equal bool) Frame {
	dx, dy := maxX-minX, maxY-minY
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}
	sx, sy := width/dx, height/dy
	f := Frame{MinX: minX, MinY: minY, scaleX: sx, scaleY: sy, offX: left, offY: top + height}
	if equal {
		s := math.Min(sx, sy)
		f.scaleX, f.scaleY = s, s
		f.offX = left + (width-dx*s)/2
		f.offY = top + height - (height-dy*s)/2
	}
	return f
}

// Map converts a data-space point to pixels.
func (f Frame) Map(p Point) Point {
	return Point{
		X: f.offX + (p.X-f.MinX)*f.scaleX,
		Y: f.offY - (p.Y-f.MinY)*f.scaleY,
	}
}

// MapAll converts several points.
func (f Frame) MapAll(ps []Point) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = f.Map(p)
	}
	return out
}

// MapSegs converts segments.
func (f Frame) MapSegs(segs [][2]Point) [][2]Point {
	out := make([][2]Point, len(segs))
	for i, s := range segs {
		out[i] = [2]Point{f.Map(s[0]), f.Map(s[1])}
	}
	return out
}
