package chem

import "math"

// Composition is a sample's major-ion make-up in meq/L, with the pairs the
// diagrams combine already summed.
type Composition struct {
	Ca, Mg, NaK      float64
	HCO3CO3, Cl, SO4 float64
}

// NewComposition builds a composition from concentrations keyed by ion
// symbol, expressed in unit u. Missing values (absent keys or NaN) count as
// zero; callers filter incomplete samples before this point, and CO3 is
// commonly left blank.
func NewComposition(values map[string]float64, u Unit) Composition {
	meq := func(ion Ion) float64 {
		v, ok := values[ion.Symbol]
		if !ok || math.IsNaN(v) {
			return 0
		}
		return ToMeq(ion, v, u)
	}
	return Composition{
		Ca:      meq(Ca),
		Mg:      meq(Mg),
		NaK:     meq(Na) + meq(K),
		HCO3CO3: meq(HCO3) + meq(CO3),
		Cl:      meq(Cl),
		SO4:     meq(SO4),
	}
}

// Cations returns the total cation load in meq/L.
func (c Composition) Cations() float64 { return c.Ca + c.Mg + c.NaK }

// Anions returns the total anion load in meq/L.
func (c Composition) Anions() float64 { return c.HCO3CO3 + c.Cl + c.SO4 }

// CationPercents returns Ca, Mg and Na+K as percentages of total cations.
// All three are zero when the sample carries no cations.
func (c Composition) CationPercents() (ca, mg, nak float64) {
	total := c.Cations()
	if total <= 0 {
		return 0, 0, 0
	}
	return 100 * c.Ca / total, 100 * c.Mg / total, 100 * c.NaK / total
}

// AnionPercents returns HCO3+CO3, Cl and SO4 as percentages of total anions.
// All three are zero when the sample carries no anions.
func (c Composition) AnionPercents() (alk, cl, so4 float64) {
	total := c.Anions()
	if total <= 0 {
		return 0, 0, 0
	}
	return 100 * c.HCO3CO3 / total, 100 * c.Cl / total, 100 * c.SO4 / total
}

// BalanceError returns the charge-balance error in percent:
// 100 * (cations - anions) / (cations + anions). It is NaN for an empty
// sample.
func (c Composition) BalanceError() float64 {
	cat, an := c.Cations(), c.Anions()
	if cat+an == 0 {
		return math.NaN()
	}
	return 100 * (cat - an) / (cat + an)
}

// WaterType returns the dominant cation and anion names, such as "Ca-HCO3",
// following the usual hydrochemical-facies naming.
func (c Composition) WaterType() string {
	cation := "Ca"
	switch {
	case c.NaK >= c.Ca && c.NaK >= c.Mg:
		cation = "Na"
	case c.Mg > c.Ca:
		cation = "Mg"
	}
	anion := "HCO3"
	switch {
	case c.Cl >= c.HCO3CO3 && c.Cl >= c.SO4:
		anion = "Cl"
	case c.SO4 > c.HCO3CO3:
		anion = "SO4"
	}
	return cation + "-" + anion
}
