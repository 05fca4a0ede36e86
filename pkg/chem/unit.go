package chem

import (
	"strings"

	"github.com/matzehuels/hydrochem/pkg/errors"
)

// Unit is a concentration unit.
type Unit string

// Supported concentration units.
const (
	MgL   Unit = "mg/L"
	MeqL  Unit = "meq/L"
	MmolL Unit = "mmol/L"
)

// DefaultUnit is the unit assumed for spreadsheet concentrations.
const DefaultUnit = MgL

// Units lists the supported units.
var Units = []Unit{MgL, MeqL, MmolL}

// ParseUnit parses a unit name. Matching is case-insensitive and accepts the
// short forms "mg", "meq" and "mmol". An empty string yields DefaultUnit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultUnit, nil
	case "mg/l", "mg", "mgl", "ppm":
		return MgL, nil
	case "meq/l", "meq", "meql":
		return MeqL, nil
	case "mmol/l", "mmol", "mmoll":
		return MmolL, nil
	}
	return "", errors.New(errors.ErrCodeInvalidUnit, "unknown unit %q (must be one of: mg/L, meq/L, mmol/L)", s)
}

// ToMeq converts a concentration of ion from unit u to meq/L.
func ToMeq(ion Ion, v float64, u Unit) float64 {
	switch u {
	case MeqL:
		return v
	case MmolL:
		return v * float64(abs(ion.Charge))
	default:
		return v / ion.EquivalentWeight()
	}
}

// FromMeq converts a concentration of ion from meq/L to unit u.
func FromMeq(ion Ion, meq float64, u Unit) float64 {
	switch u {
	case MeqL:
		return meq
	case MmolL:
		return meq / float64(abs(ion.Charge))
	default:
		return meq * ion.EquivalentWeight()
	}
}

// Convert converts a concentration of ion between units.
func Convert(ion Ion, v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	return FromMeq(ion, ToMeq(ion, v, from), to)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
