package piper

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/diagram"
	pkgio "github.com/matzehuels/hydrochem/pkg/io"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/render"
)

func near(a, b render.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestProject(t *testing.T) {
	tests := []struct {
		name string
		comp chem.Composition
		want Positions
	}{
		{
			name: "calcium bicarbonate",
			comp: chem.Composition{Ca: 3, HCO3CO3: 3},
			want: Positions{cations.A, anions.A, diamond.At(1, 0)},
		},
		{
			name: "sodium chloride",
			comp: chem.Composition{NaK: 5, Cl: 5},
			want: Positions{cations.B, anions.B, diamond.At(0, 1)},
		},
		{
			name: "magnesium sulfate",
			comp: chem.Composition{Mg: 2, SO4: 2},
			want: Positions{cations.C, anions.C, diamond.At(1, 1)},
		},
		{
			name: "mixed",
			comp: chem.Composition{Ca: 1, Mg: 1, NaK: 2, HCO3CO3: 2, Cl: 1, SO4: 1},
			want: Positions{
				cations.At(25, 50, 25),
				anions.At(50, 25, 25),
				diamond.At(0.5, 0.5),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.comp)
			if !near(got.Cation, tt.want.Cation) || !near(got.Anion, tt.want.Anion) || !near(got.Diamond, tt.want.Diamond) {
				t.Errorf("Project() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDiamondVertices(t *testing.T) {
	left, right := diamond.At(1, 0), diamond.At(0, 1)
	if math.Abs(left.Y-right.Y) > 1e-9 {
		t.Errorf("side vertices not level: %v %v", left, right)
	}
	if c := (left.X + right.X) / 2; math.Abs(c-(1+gap/2)) > 1e-9 {
		t.Errorf("diamond not centered between triangles: %v", c)
	}
}

func TestRenderSVG(t *testing.T) {
	tbl, err := normalize.Normalize(pkgio.Template(), diagram.Piper)
	if err != nil {
		t.Fatal(err)
	}

	out := RenderSVG(tbl, render.WithTitle("Template"), render.WithSize(600, 600))

	dec := xml.NewDecoder(bytes.NewReader(out))
	for {
		if _, err := dec.Token(); err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatalf("invalid svg: %v", err)
			}
			break
		}
	}

	s := string(out)
	if got := strings.Count(s, `class="sample"`); got != tbl.Len() {
		t.Errorf("sample groups = %d, want %d", got, tbl.Len())
	}
	for _, want := range []string{`width="600"`, ">Template</text>", ">Aquifer A</text>", ">Na+K</text>", ">Cl+SO4</text>"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(s, "NaN") {
		t.Error("output contains NaN coordinates")
	}
}

func TestRenderSVGWithoutLegend(t *testing.T) {
	tbl, _ := normalize.Normalize(pkgio.Template(), diagram.Piper)
	if out := string(RenderSVG(tbl, render.WithoutLegend())); strings.Contains(out, ">Aquifer A</text>") {
		t.Error("legend drawn despite WithoutLegend")
	}
}
