package builtin

import (
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/loterias"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// ValidateDezenas drops rows whose drawn-number list fails either check:
//
//  1. Size: the list must have the same length as row 0's list (the batch's
//     expected draw size). When row 0's value is not a list the size check
//     is skipped entirely and only the range check applies.
//  2. Range: every element, coerced to an integer, must fall inside the
//     lottery's closed interval. Unknown lottery products pass unchecked.
//
// Rows are dropped, never repaired; the surviving rows form a fresh,
// contiguous batch.
type ValidateDezenas struct {
	// Field defaults to "dezenas".
	Field string
}

func (v ValidateDezenas) Apply(in records.Batch) records.Batch {
	if in.Len() == 0 {
		return in
	}
	field := v.Field
	if field == "" {
		field = "dezenas"
	}

	expected, haveExpected := -1, false
	if first, ok := in.Rows[0][field].([]any); ok {
		expected, haveExpected = len(first), true
	}

	out := make([]records.Record, 0, in.Len())
	for _, r := range in.Rows {
		lst, isList := r[field].([]any)
		if haveExpected && (!isList || len(lst) != expected) {
			continue
		}
		loteria := loterias.NormalizeName(AsString(r["loteria"]))
		if !dezenasInRange(r[field], loteria) {
			continue
		}
		out = append(out, r)
	}
	return in.WithRows(out)
}

// dezenasInRange checks every element of a drawn-number list against the
// product's interval. Products without a registered interval are passed
// through unvalidated, whatever the value's shape.
func dezenasInRange(v any, loteria string) bool {
	rng, known := loterias.RangeFor(loteria)
	if !known {
		return true
	}
	lst, ok := v.([]any)
	if !ok {
		return false
	}
	for _, e := range lst {
		n, ok := AsInt(e)
		if !ok || !rng.Contains(int(n)) {
			return false
		}
	}
	return true
}
