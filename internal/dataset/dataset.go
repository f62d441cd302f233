// Package dataset loads the raw multi-lottery document and partitions it
// into one batch per lottery product. This is the input side of the
// pipeline: it performs grouping and normalization only, no domain logic.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/loterias"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/transformer/builtin"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// ErrMissingLoteria signals that the document has no loteria column at all.
// This is a hard precondition failure for the whole run: without it nothing
// can be partitioned.
var ErrMissingLoteria = errors.New("dataset: document has no loteria column")

// Load reads a raw draw document: either a single JSON array of objects or
// a stream of newline-delimited objects. Numbers are kept as json.Number so
// the cleaning stage decides their final type.
func Load(r io.Reader) ([]records.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var out []records.Record
	for {
		var raw any
		if err := dec.Decode(&raw); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, fmt.Errorf("dataset: decode: %w", err)
		}
		switch v := raw.(type) {
		case map[string]any:
			out = append(out, records.Record(v))
		case []any:
			for i, e := range v {
				m, ok := e.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("dataset: element %d is not an object", i)
				}
				out = append(out, records.Record(m))
			}
		default:
			return nil, fmt.Errorf("dataset: unsupported top-level value %T", raw)
		}
	}
}

// LoadFile is Load over a file path.
func LoadFile(path string) ([]records.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Partition groups the raw rows into one batch per normalized lottery
// identifier. Rows that are entirely null are dropped first; rows with a
// null or empty loteria are skipped. The batch column order is the sorted
// union of the keys observed in that lottery's rows, with loteria pinned
// first.
func Partition(rows []records.Record) (map[string]records.Batch, error) {
	sawColumn := false
	grouped := map[string][]records.Record{}
	columns := map[string]map[string]struct{}{}

	for _, r := range rows {
		if allNull(r) {
			continue
		}
		v, ok := r["loteria"]
		if !ok {
			continue
		}
		sawColumn = true
		name := loterias.NormalizeName(builtin.AsString(v))
		if name == "" {
			continue
		}
		r["loteria"] = name

		grouped[name] = append(grouped[name], r)
		cols, ok := columns[name]
		if !ok {
			cols = map[string]struct{}{}
			columns[name] = cols
		}
		for k := range r {
			cols[k] = struct{}{}
		}
	}
	if !sawColumn {
		return nil, ErrMissingLoteria
	}

	out := make(map[string]records.Batch, len(grouped))
	for name, rs := range grouped {
		out[name] = records.Batch{Columns: columnOrder(columns[name]), Rows: rs}
	}
	return out, nil
}

// columnOrder pins loteria first and sorts the rest; JSON objects carry no
// order to preserve.
func columnOrder(set map[string]struct{}) []string {
	cols := make([]string, 0, len(set))
	for c := range set {
		if c != "loteria" {
			cols = append(cols, c)
		}
	}
	sort.Strings(cols)
	return append([]string{"loteria"}, cols...)
}

func allNull(r records.Record) bool {
	for _, v := range r {
		if v != nil {
			return false
		}
	}
	return true
}
