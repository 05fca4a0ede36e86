// Package diagram declares the supported hydrogeochemical diagrams and the
// columns each one needs.
package diagram

import (
	"strings"

	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/errors"
)

// Kind identifies a diagram type.
type Kind string

// Recognized diagram kinds.
const (
	Piper     Kind = "piper"
	Durov     Kind = "durov"
	Stiff     Kind = "stiff"
	Schoeller Kind = "schoeller"
)

// Kinds lists the recognized kinds in selector order.
var Kinds = []Kind{Piper, Durov, Stiff, Schoeller}

// Column names outside the ion set.
const (
	ColPH     = "pH"
	ColTDS    = "TDS"
	ColSample = "Sample"
)

// ParseKind parses a diagram name. Matching is case-insensitive and ignores
// surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidDiagram, "unknown diagram %q (must be one of: piper, durov, stiff, schoeller)", s)
}

// Title returns the display name, e.g. "Piper".
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// String returns the lower-case kind name.
func (k Kind) String() string { return string(k) }

// Required returns the columns a row must have non-missing values for to be
// plotted on this kind of diagram.
func (k Kind) Required() []string {
	switch k {
	case Piper:
		return ionColumns(chem.Ions())
	case Durov:
		return append(ionColumns(chem.Ions()), ColPH, ColTDS)
	case Stiff:
		return append(ionColumns([]chem.Ion{chem.Ca, chem.Mg, chem.Na, chem.K, chem.HCO3, chem.Cl, chem.SO4}), ColSample)
	case Schoeller:
		return ionColumns([]chem.Ion{chem.Ca, chem.Mg, chem.Na, chem.K, chem.HCO3, chem.Cl, chem.SO4})
	}
	return nil
}

// DefaultUnit returns the concentration unit assumed for the input data when
// the caller does not pass one.
func (k Kind) DefaultUnit() chem.Unit {
	return chem.MgL
}

func ionColumns(ions []chem.Ion) []string {
	cols := make([]string, len(ions))
	for i, ion := range ions {
		cols[i] = ion.Symbol
	}
	return cols
}
