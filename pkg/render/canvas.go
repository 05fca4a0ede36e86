package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const (
	fontFamily   = "Helvetica,Arial,sans-serif"
	fontSize     = 12
	titleSize    = 16
	axisColor    = "#333333"
	gridColor    = "#bbbbbb"
	legendRow    = 18
	legendMarker = 40.0
)

// Canvas is an SVG document under construction.
type Canvas struct {
	buf    bytes.Buffer
	svg    *svg.SVG
	Width  int
	Height int
}

// NewCanvas starts a document with a white background.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{Width: width, Height: height}
	c.svg = svg.New(&c.buf)
	c.svg.Startview(width, height, 0, 0, width, height)
	c.svg.Rect(0, 0, width, height, `fill="#ffffff"`)
	c.svg.Group(fmt.Sprintf(`font-family="%s"`, fontFamily), fmt.Sprintf(`font-size="%d"`, fontSize))
	return c
}

// Bytes finishes the document and returns it.
func (c *Canvas) Bytes() []byte {
	c.svg.Gend()
	c.svg.End()
	return c.buf.Bytes()
}

// Title draws a centered title at the top of the canvas.
func (c *Canvas) Title(s string) {
	if s == "" {
		return
	}
	c.svg.Title(s)
	c.Text(Point{float64(c.Width) / 2, titleSize + 8}, s,
		`text-anchor="middle"`, fmt.Sprintf(`font-size="%d"`, titleSize), `font-weight="bold"`)
}

// Group opens a <g> element with the given attributes.
func (c *Canvas) Group(attrs ...string) { c.svg.Group(attrs...) }

// Gend closes the innermost group.
func (c *Canvas) Gend() { c.svg.Gend() }

// SampleGroup opens a group tagging the shapes drawn for one sample.
func (c *Canvas) SampleGroup(s Sample) {
	c.svg.Group(`class="sample"`, fmt.Sprintf(`data-label="%s"`, Escape(s.Label)))
}

// Text draws s at p.
func (c *Canvas) Text(p Point, s string, attrs ...string) {
	c.svg.Text(int(math.Round(p.X)), int(math.Round(p.Y)), s, attrs...)
}

// Line draws a straight segment.
func (c *Canvas) Line(a, b Point, attrs ...string) {
	c.svg.Path(pathData([]Point{a, b}, false), attrs...)
}

// Polyline draws an open path through ps.
func (c *Canvas) Polyline(ps []Point, attrs ...string) {
	if len(ps) < 2 {
		return
	}
	c.svg.Path(pathData(ps, false), append([]string{`fill="none"`}, attrs...)...)
}

// Polygon draws a closed path through ps.
func (c *Canvas) Polygon(ps []Point, attrs ...string) {
	if len(ps) < 3 {
		return
	}
	c.svg.Path(pathData(ps, true), attrs...)
}

// Outline draws an unfilled closed shape with the axis style.
func (c *Canvas) Outline(ps []Point) {
	c.Polygon(ps, `fill="none"`, Stroke(axisColor, 1.2))
}

// Grid draws light grid segments.
func (c *Canvas) Grid(segs [][2]Point) {
	for _, s := range segs {
		c.Line(s[0], s[1], Stroke(gridColor, 0.6), `stroke-dasharray="3,3"`)
	}
}

// Legend lists each label once, in order of first appearance, starting at
// the top-left corner p.
func (c *Canvas) Legend(p Point, samples []Sample) {
	seen := make(map[string]bool)
	row := 0
	for _, s := range samples {
		if seen[s.Label] {
			continue
		}
		seen[s.Label] = true
		y := p.Y + float64(row)*legendRow
		entry := s
		entry.Size = legendMarker
		entry.Alpha = 1
		c.Marker(Point{p.X + 6, y}, entry)
		c.Text(Point{p.X + 16, y + 4}, s.Label)
		row++
	}
}

// Stroke returns stroke attributes.
func Stroke(color string, width float64) string {
	return fmt.Sprintf(`stroke="%s" stroke-width="%s"`, color, num(width))
}

// Fill returns fill attributes.
func Fill(color string, alpha float64) string {
	if alpha >= 1 {
		return fmt.Sprintf(`fill="%s"`, color)
	}
	return fmt.Sprintf(`fill="%s" fill-opacity="%s"`, color, num(alpha))
}

func pathData(ps []Point, closed bool) string {
	var b strings.Builder
	for i, p := range ps {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(num(p.X))
		b.WriteByte(' ')
		b.WriteString(num(p.Y))
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// TickLabel formats an axis value without trailing zeros.
func TickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// Escape escapes s for use in XML text or attribute values.
func Escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
