package palette

import "github.com/lucasb-eyer/go-colorful"

var white = colorful.Color{R: 1, G: 1, B: 1}

// Lighten blends hex toward white by t in [0, 1], in CIE-L*a*b* space.
// Unparseable input is returned unchanged.
func Lighten(hex string, t float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendLab(white, t).Clamped().Hex()
}

// Valid reports whether s is a hex color the renderers accept.
func Valid(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}
