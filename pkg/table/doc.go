// Package table provides the column-oriented sample table shared by the
// reader, the normalizer, and the diagram renderers.
//
// # Overview
//
// A [Table] is an ordered set of equally long [Column] values. Columns are
// either numeric or text:
//
//   - Numeric columns store float64 values, with NaN marking a missing cell.
//   - Text columns store strings, with "" marking a missing cell.
//
// Every row also carries its positional index in the source sheet, so rows
// keep their identity after filtering ("row 3 was dropped").
//
// # Immutability
//
// Tables are values: every operation ([Table.With], [Table.Merge],
// [Table.Filter], [Table.Project]) returns a new table and leaves its
// receiver untouched. Columns are shared between tables only when they are
// not modified, and columns are never written after construction, so a
// table may be read from several goroutines.
//
// # Schema merge
//
// A [Schema] declares the columns a consumer expects. [Table.Merge] returns a
// table in which every declared column exists with the declared kind:
// absent columns are inserted filled with the field's fill value, and present
// columns of the wrong kind are converted.
//
//	s := table.Schema{
//	    table.NumField("Ca", table.Missing),
//	    table.TextField("Marker", "o"),
//	}
//	complete := raw.Merge(s)
package table
