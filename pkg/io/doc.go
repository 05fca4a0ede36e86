// Package io reads sample spreadsheets and writes tables and templates.
//
// # Input format
//
// The first worksheet (or the one named with [WithSheet]) is read. Its first
// row is the header; every following non-blank row is one sample. Recognized
// columns are:
//
//	Ca  Mg  Na  K  HCO3  CO3  Cl  SO4  pH  TDS     numeric
//	Sample  Label  Color  Marker                  text
//	Size  Alpha                                   numeric
//
// Any subset may be present, in any order. Other columns are kept as they are,
// typed numeric when every non-blank cell parses as a number and text
// otherwise.
//
// # Header matching
//
// Headers are matched against the schema passed with [WithSchema] after
// trimming, Unicode NFC normalization, and removal of a trailing unit in
// parentheses or brackets, ignoring case. "ca (mg/L)", " CA " and "Ca" all
// name the Ca column. Blank headers become "Unnamed: N" and repeated headers
// get ".1", ".2" suffixes.
//
// # Cells
//
// Raw cell values are read, not their display formatting. A numeric column
// cell that does not parse as a number ("<0.1", "n.d.") is treated as missing
// and reported in [Result.Coerced].
//
// # Output
//
// [WriteXLSX] writes a table as a single-sheet workbook, [WriteTemplate]
// writes the example workbook offered to users, and [WriteJSON] writes a
// table as an array of row objects.
package io
