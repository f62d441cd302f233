package ddl

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

/*
TestInfer verifies kind detection per Go value type, numeric widening and
the text fallback for mixed or all-null columns.
*/
func TestInfer(t *testing.T) {
	rows := []records.Record{
		{
			"i": int64(1), "f": 1.5, "b": true, "d": time.Now(),
			"s": "x", "jn_int": json.Number("7"), "jn_float": json.Number("7.5"),
			"widen": int64(1), "mixed": int64(1), "null": nil,
		},
		{
			"i": int64(2), "f": 2.5, "b": false, "d": time.Now(),
			"s": "y", "jn_int": json.Number("8"), "jn_float": json.Number("8.5"),
			"widen": 2.5, "mixed": "oops", "null": nil,
		},
	}
	cols := []string{"i", "f", "b", "d", "s", "jn_int", "jn_float", "widen", "mixed", "null", "absent"}
	defs := Infer(cols, rows)

	want := map[string]string{
		"i": "int", "f": "float", "b": "bool", "d": "date", "s": "text",
		"jn_int": "int", "jn_float": "float",
		"widen": "float", "mixed": "text", "null": "text", "absent": "text",
	}
	if len(defs) != len(cols) {
		t.Fatalf("got %d defs; want %d", len(defs), len(cols))
	}
	for i, def := range defs {
		if def.Name != cols[i] {
			t.Errorf("def %d name = %s; want %s (order must follow input)", i, def.Name, cols[i])
		}
		if def.Kind != want[def.Name] {
			t.Errorf("%s kind = %s; want %s", def.Name, def.Kind, want[def.Name])
		}
	}
}

/*
TestInfer_NullsDoNotNarrow verifies that interleaved nulls never affect a
column's inferred kind.
*/
func TestInfer_NullsDoNotNarrow(t *testing.T) {
	rows := []records.Record{
		{"v": nil},
		{"v": int64(3)},
		{"v": nil},
	}
	defs := Infer([]string{"v"}, rows)
	if defs[0].Kind != "int" {
		t.Fatalf("kind = %s; want int", defs[0].Kind)
	}
}
