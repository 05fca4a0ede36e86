// Package normalize turns a raw sample table into per-diagram tables ready for
// rendering.
//
// # Steps
//
// [Prepare] runs once per uploaded file:
//
//  1. Column completion: every expected numeric column (major ions, pH, TDS)
//     absent from the input is inserted with missing cells, never zeros, so
//     the selection step can exclude affected rows.
//  2. Label derivation: without a Label column, labels come from the Sample
//     column, or from the row position when there is no Sample column.
//  3. Display defaults: Marker "o", Size 40 and Alpha 1.0, each only when the
//     column is absent.
//  4. Color assignment: distinct labels get palette colors in first-seen
//     order; the resulting [palette.ColorMap] is kept on the [Prepared]
//     value and applied to every diagram.
//
// [Prepared.Select] then runs per diagram kind:
//
//  5. Rows with a missing value in any of the kind's required columns are
//     dropped whole. Kept rows carry every major ion, required or not.
//  6. An empty result is reported as an error with code NO_PLOTTABLE_ROWS.
//
// Every step returns new tables; the raw input is never modified, and the
// same input always yields the same output.
package normalize
