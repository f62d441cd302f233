package features

import (
	"fmt"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/transformer/builtin"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// ExpandDezenas creates one column per drawn-number position,
// dezena_1..dezena_N, where N is the longest dezenas list observed in the
// batch. Rows with fewer elements get null in the trailing columns; rows
// whose dezenas is not a list get null across all N.
type ExpandDezenas struct{}

func (ExpandDezenas) Apply(in records.Batch) records.Batch {
	maxLen := 0
	for _, r := range in.Rows {
		if lst, ok := r["dezenas"].([]any); ok && len(lst) > maxLen {
			maxLen = len(lst)
		}
	}
	if maxLen == 0 {
		return in
	}

	cols := make([]string, maxLen)
	for i := range cols {
		cols[i] = fmt.Sprintf("dezena_%d", i+1)
	}
	out := in.AppendColumns(cols...)

	for _, r := range out.Rows {
		lst, isList := r["dezenas"].([]any)
		for i, col := range cols {
			if !isList || i >= len(lst) {
				r[col] = nil
				continue
			}
			if n, ok := builtin.AsInt(lst[i]); ok {
				r[col] = n
			} else {
				r[col] = lst[i]
			}
		}
	}
	return out
}
