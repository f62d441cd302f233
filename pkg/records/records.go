// Package records defines the in-memory tabular values that flow through the
// ETL pipeline: a Record is one draw, a Batch is the ordered table of draws
// for a single lottery at one pipeline stage.
//
// Batches are passed by value between stages. A stage may mutate the Record
// maps it received (they are owned by the pipeline run), but must return a
// fresh Batch whenever the column set or the row set changes, so that no
// caller observes a half-transformed table.
package records

// Record is a single draw record: column name -> value.
//
// Values are restricted to the types produced by parsing and coercion:
// nil, string, bool, int64, float64, time.Time, json.Number, []any,
// []int64 and map[string]any (nested structures from the feed).
type Record map[string]any

// Clone returns a shallow copy of the record. Nested slices and maps are
// shared with the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Batch is an ordered table of records with an explicit column order.
//
// The column order is what ultimately becomes the relation's column order at
// persistence time; map iteration order is never relied upon.
type Batch struct {
	Columns []string
	Rows    []Record
}

// Len returns the number of rows.
func (b Batch) Len() int { return len(b.Rows) }

// HasColumn reports whether name is part of the batch's column set.
func (b Batch) HasColumn(name string) bool {
	for _, c := range b.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// WithoutColumns returns a batch with the named columns removed from both the
// column order and every row. Names not present are ignored.
func (b Batch) WithoutColumns(names ...string) Batch {
	if len(names) == 0 {
		return b
	}
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	cols := make([]string, 0, len(b.Columns))
	for _, c := range b.Columns {
		if _, ok := drop[c]; !ok {
			cols = append(cols, c)
		}
	}
	for _, r := range b.Rows {
		for n := range drop {
			delete(r, n)
		}
	}
	return Batch{Columns: cols, Rows: b.Rows}
}

// AppendColumns returns a batch whose column order additionally contains the
// given names, in the given order, skipping names already present. Row values
// for the new columns are whatever the rows already hold (usually nothing,
// which reads back as nil).
func (b Batch) AppendColumns(names ...string) Batch {
	cols := b.Columns
	for _, n := range names {
		if !b.HasColumn(n) {
			cols = append(cols, n)
		}
	}
	return Batch{Columns: cols, Rows: b.Rows}
}

// WithRows returns a batch with the same column order and the given rows.
func (b Batch) WithRows(rows []Record) Batch {
	return Batch{Columns: b.Columns, Rows: rows}
}
