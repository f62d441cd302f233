package builtin

import (
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// DeDup collapses duplicate rows by a business key, keeping the last
// occurrence in the batch. Re-running it on an already deduplicated batch is
// a no-op, which makes the cleaning stage idempotent.
//
// Keys are fingerprinted with xxh3 instead of kept as full strings; the
// batch is the whole history of a lottery, so the winner map is sized in the
// thousands and the cheap hash keeps it compact.
type DeDup struct {
	// Keys are the field names forming the business key, e.g. ["concurso"].
	Keys []string
}

func (d DeDup) Apply(in records.Batch) records.Batch {
	if in.Len() == 0 || len(d.Keys) == 0 {
		return in
	}

	type slot struct {
		rec   records.Record
		index int
	}

	keyOf := func(r records.Record) (uint64, bool) {
		var b strings.Builder
		for _, k := range d.Keys {
			v, ok := r[k]
			if !ok {
				// No key field: outside the dedup domain, passed through.
				return 0, false
			}
			if b.Len() > 0 {
				b.WriteByte('\x1f')
			}
			if v == nil {
				b.WriteByte('\x00')
			} else {
				b.WriteString(AsString(v))
			}
		}
		return xxh3.HashString(b.String()), true
	}

	winners := make(map[uint64]slot, in.Len())
	for i, r := range in.Rows {
		if key, ok := keyOf(r); ok {
			winners[key] = slot{rec: r, index: i} // keep-last
		}
	}

	indexes := make([]int, 0, len(winners))
	byIndex := make(map[int]records.Record, len(winners))
	for _, s := range winners {
		indexes = append(indexes, s.index)
		byIndex[s.index] = s.rec
	}
	sort.Ints(indexes)

	out := make([]records.Record, 0, len(winners))
	for _, idx := range indexes {
		out = append(out, byIndex[idx])
	}
	// Non-keyed rows keep their original relative order at the end.
	for _, r := range in.Rows {
		if _, ok := keyOf(r); !ok {
			out = append(out, r)
		}
	}
	return in.WithRows(out)
}
