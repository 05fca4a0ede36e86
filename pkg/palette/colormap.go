package palette

// Entry is one label and its assigned color.
type Entry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// ColorMap assigns colors to labels in first-seen order.
type ColorMap struct {
	palette Palette
	labels  []string
	index   map[string]int
}

// Build assigns a color to every distinct label, in the order labels are
// first seen. The i-th distinct label gets palette color i mod palette size.
func Build(labels []string, p Palette) *ColorMap {
	m := &ColorMap{palette: p, index: make(map[string]int)}
	for _, l := range labels {
		if _, ok := m.index[l]; ok {
			continue
		}
		m.index[l] = len(m.labels)
		m.labels = append(m.labels, l)
	}
	return m
}

// Color returns the color assigned to label.
func (m *ColorMap) Color(label string) (string, bool) {
	i, ok := m.index[label]
	if !ok {
		return "", false
	}
	return m.palette.Hex(i), true
}

// Len returns the number of distinct labels.
func (m *ColorMap) Len() int { return len(m.labels) }

// Labels returns the distinct labels in first-seen order.
func (m *ColorMap) Labels() []string { return append([]string(nil), m.labels...) }

// Entries returns every label with its color, in first-seen order.
func (m *ColorMap) Entries() []Entry {
	out := make([]Entry, len(m.labels))
	for i, l := range m.labels {
		out[i] = Entry{Label: l, Color: m.palette.Hex(i)}
	}
	return out
}

// Palette returns the palette the map draws from.
func (m *ColorMap) Palette() Palette { return m.palette }
