package builtin

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

/*
TestCoerceApply_Basics verifies the four coercion kinds on well-formed
values coming out of the JSON loader.
*/
func TestCoerceApply_Basics(t *testing.T) {
	c := Coerce{Types: map[string]string{
		"concurso":        "int",
		"valorArrecadado": "money",
		"data":            "date",
		"acumulou":        "bool",
	}}
	in := records.Batch{
		Columns: []string{"concurso", "valorArrecadado", "data", "acumulou"},
		Rows: []records.Record{{
			"concurso":        json.Number("2750"),
			"valorArrecadado": "548123456.78",
			"data":            "05/10/2024",
			"acumulou":        true,
		}},
	}
	out := c.Apply(in)
	r := out.Rows[0]

	if v, ok := r["concurso"].(int64); !ok || v != 2750 {
		t.Fatalf("concurso = %#v; want int64(2750)", r["concurso"])
	}
	if v, ok := r["valorArrecadado"].(float64); !ok || v != 548123456.78 {
		t.Fatalf("valorArrecadado = %#v; want float64", r["valorArrecadado"])
	}
	d, ok := r["data"].(time.Time)
	if !ok || d.Format("2006-01-02") != "2024-10-05" {
		t.Fatalf("data = %#v; want 2024-10-05 (day-first)", r["data"])
	}
	if v, ok := r["acumulou"].(bool); !ok || !v {
		t.Fatalf("acumulou = %#v; want true", r["acumulou"])
	}
}

/*
TestCoerceApply_FailuresBecomeNull verifies the pipeline's core policy:
coercion failure writes null, never an error and never the raw value.
*/
func TestCoerceApply_FailuresBecomeNull(t *testing.T) {
	c := Coerce{Types: map[string]string{
		"concurso": "int",
		"valor":    "money",
		"data":     "date",
		"acumulou": "bool",
	}}
	in := records.Batch{
		Columns: []string{"concurso", "valor", "data", "acumulou"},
		Rows: []records.Record{{
			"concurso": "not-a-number",
			"valor":    "R$ 10,50",
			"data":     "someday",
			"acumulou": "maybe",
		}},
	}
	out := c.Apply(in)
	for _, field := range []string{"concurso", "valor", "data", "acumulou"} {
		if out.Rows[0][field] != nil {
			t.Errorf("%s = %#v; want nil", field, out.Rows[0][field])
		}
	}
}

/*
TestAsDate_MixedDayFirst verifies the accepted date shapes; the feed mixes
dd/mm/yyyy with ISO exports.
*/
func TestAsDate_MixedDayFirst(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"31/12/2023", "2023-12-31"},
		{"01-02-2020", "2020-02-01"},
		{"15.03.2019", "2019-03-15"},
		{"2024-10-05", "2024-10-05"},
	}
	for _, c := range cases {
		d, ok := AsDate(c.in)
		if !ok {
			t.Fatalf("AsDate(%q): not parsed", c.in)
		}
		if got := d.Format("2006-01-02"); got != c.want {
			t.Errorf("AsDate(%q) = %s; want %s", c.in, got, c.want)
		}
	}
	if _, ok := AsDate("13/13/2020"); ok {
		t.Errorf("AsDate should reject month 13")
	}
}

/*
TestAsInt verifies integral coercion across the value types the loader and
the feed produce.
*/
func TestAsInt(t *testing.T) {
	okCases := []struct {
		in   any
		want int64
	}{
		{json.Number("42"), 42},
		{json.Number("42.0"), 42},
		{"07", 7},
		{" 10 ", 10},
		{float64(60), 60},
		{int(3), 3},
	}
	for _, c := range okCases {
		got, ok := AsInt(c.in)
		if !ok || got != c.want {
			t.Errorf("AsInt(%#v) = %d, %v; want %d, true", c.in, got, ok, c.want)
		}
	}
	for _, in := range []any{"abc", 1.5, json.Number("1.5"), nil, []any{}} {
		if _, ok := AsInt(in); ok {
			t.Errorf("AsInt(%#v) should fail", in)
		}
	}
}

/*
TestAsBool verifies the tri-state boolean: recognized forms coerce, the
rest report not-ok (stored as null by Coerce).
*/
func TestAsBool(t *testing.T) {
	truthy := []any{true, "true", "True", "1", json.Number("1")}
	for _, in := range truthy {
		if got, ok := AsBool(in); !ok || !got {
			t.Errorf("AsBool(%#v) = %v, %v; want true, true", in, got, ok)
		}
	}
	falsy := []any{false, "false", "0", json.Number("0")}
	for _, in := range falsy {
		if got, ok := AsBool(in); !ok || got {
			t.Errorf("AsBool(%#v) = %v, %v; want false, true", in, got, ok)
		}
	}
	for _, in := range []any{"maybe", 2, nil} {
		if _, ok := AsBool(in); ok {
			t.Errorf("AsBool(%#v) should be unknown", in)
		}
	}
}
