package chem

import "math"

// Ion is a major dissolved ion.
type Ion struct {
	Symbol    string  // Column name in the sample table
	MolarMass float64 // g/mol
	Charge    int     // Signed ionic charge
}

// Major ions. Molar masses in g/mol.
var (
	Ca   = Ion{Symbol: "Ca", MolarMass: 40.078, Charge: 2}
	Mg   = Ion{Symbol: "Mg", MolarMass: 24.305, Charge: 2}
	Na   = Ion{Symbol: "Na", MolarMass: 22.990, Charge: 1}
	K    = Ion{Symbol: "K", MolarMass: 39.098, Charge: 1}
	HCO3 = Ion{Symbol: "HCO3", MolarMass: 61.017, Charge: -1}
	CO3  = Ion{Symbol: "CO3", MolarMass: 60.009, Charge: -2}
	Cl   = Ion{Symbol: "Cl", MolarMass: 35.453, Charge: -1}
	SO4  = Ion{Symbol: "SO4", MolarMass: 96.06, Charge: -2}
)

// Cations returns the major cations in conventional order.
func Cations() []Ion { return []Ion{Ca, Mg, Na, K} }

// Anions returns the major anions in conventional order.
func Anions() []Ion { return []Ion{HCO3, CO3, Cl, SO4} }

// Ions returns all major ions, cations first.
func Ions() []Ion { return append(Cations(), Anions()...) }

// Lookup returns the ion with the given symbol.
func Lookup(symbol string) (Ion, bool) {
	for _, ion := range Ions() {
		if ion.Symbol == symbol {
			return ion, true
		}
	}
	return Ion{}, false
}

// EquivalentWeight returns the mass in mg of one milliequivalent.
func (i Ion) EquivalentWeight() float64 {
	return i.MolarMass / math.Abs(float64(i.Charge))
}

// IsCation reports whether the ion is positively charged.
func (i Ion) IsCation() bool { return i.Charge > 0 }
