// Package chem holds the major-ion chemistry used by the diagram renderers:
// ion definitions, concentration units, and conversion to milliequivalents.
//
// All hydrogeochemical diagrams in this module compare ions by charge
// equivalence, so concentrations read from a spreadsheet are converted to
// meq/L before plotting:
//
//	meq/L = mg/L / (molar mass / |charge|)
//	meq/L = mmol/L * |charge|
package chem
