package ddl

import (
	"encoding/json"
	"time"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// Infer derives logical column kinds by scanning every value of every row.
// Mixed numeric columns widen to "float"; any other mix, and columns that
// are entirely null, fall back to "text".
func Infer(columns []string, rows []records.Record) []ColumnDef {
	defs := make([]ColumnDef, 0, len(columns))
	for _, col := range columns {
		defs = append(defs, ColumnDef{Name: col, Kind: inferColumn(col, rows)})
	}
	return defs
}

func inferColumn(col string, rows []records.Record) string {
	kind := ""
	for _, r := range rows {
		v, ok := r[col]
		if !ok || v == nil {
			continue
		}
		kind = merge(kind, kindOf(v))
		if kind == "text" {
			break
		}
	}
	if kind == "" {
		return "text"
	}
	return kind
}

func kindOf(v any) string {
	switch t := v.(type) {
	case int64, int, int32:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case time.Time:
		return "date"
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return "int"
		}
		return "float"
	default:
		return "text"
	}
}

func merge(a, b string) string {
	switch {
	case a == "" || a == b:
		return b
	case (a == "int" && b == "float") || (a == "float" && b == "int"):
		return "float"
	default:
		return "text"
	}
}
