package clean

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

func megaRow(concurso string, dezenas []any) records.Record {
	return records.Record{
		"loteria":         "Mega-Sena",
		"concurso":        json.Number(concurso),
		"data":            "05/10/2024",
		"dezenas":         dezenas,
		"acumulou":        "true",
		"valorArrecadado": json.Number("548123456.78"),
		"timeCoracao":     nil,
		"mesSorte":        nil,
	}
}

func nums(ss ...string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = json.Number(s)
	}
	return out
}

/*
TestClean runs the whole cleaning stage on a small mega-sena batch:
product columns dropped, republished draw deduplicated keep-last, types
coerced, textual lists decoded, invalid draws removed.
*/
func TestClean(t *testing.T) {
	six := nums("10", "22", "35", "41", "50", "58")
	in := records.Batch{
		Columns: []string{"loteria", "concurso", "data", "dezenas", "acumulou", "valorArrecadado", "timeCoracao", "mesSorte"},
		Rows: []records.Record{
			megaRow("2750", six),
			megaRow("2751", nums("1", "2", "3", "4", "5", "61")), // 61 out of range
			megaRow("2750", six),                                 // republished draw, wins over the first
			megaRow("2752", nums("1", "2", "3")),                 // truncated draw
			megaRow("2753", six),
		},
	}

	out := Clean(in)

	if out.HasColumn("timeCoracao") || out.HasColumn("mesSorte") {
		t.Fatalf("columns = %v; mega-sena product columns should be dropped", out.Columns)
	}
	if out.Len() != 2 {
		t.Fatalf("got %d rows; want 2 (dedup + 2 invalid draws)", out.Len())
	}

	r := out.Rows[0]
	if got := r["concurso"].(int64); got != 2750 {
		t.Fatalf("concurso = %v; want 2750", r["concurso"])
	}
	if d := r["data"].(time.Time); d.Format("2006-01-02") != "2024-10-05" {
		t.Fatalf("data = %v; want 2024-10-05", r["data"])
	}
	if r["acumulou"] != true {
		t.Fatalf("acumulou = %#v; want true", r["acumulou"])
	}
	if r["valorArrecadado"].(float64) != 548123456.78 {
		t.Fatalf("valorArrecadado = %#v", r["valorArrecadado"])
	}
	if out.Rows[1]["concurso"].(int64) != 2753 {
		t.Fatalf("second survivor = %v; want 2753", out.Rows[1]["concurso"])
	}
}

/*
TestClean_TextualLists verifies that repr-encoded list columns decode
before validation, so a textually-encoded valid draw survives.
*/
func TestClean_TextualLists(t *testing.T) {
	in := records.Batch{
		Columns: []string{"loteria", "concurso", "dezenas", "premiacoes"},
		Rows: []records.Record{{
			"loteria":    "megasena",
			"concurso":   json.Number("100"),
			"dezenas":    `['10', '22', '35', '41', '50', '58']`,
			"premiacoes": `[{'faixa': 1, 'ganhadores': 0}]`,
		}},
	}
	out := Clean(in)
	if out.Len() != 1 {
		t.Fatalf("textual dezenas should decode and validate; got %d rows", out.Len())
	}
	if _, ok := out.Rows[0]["dezenas"].([]any); !ok {
		t.Fatalf("dezenas = %#v; want decoded list", out.Rows[0]["dezenas"])
	}
	if _, ok := out.Rows[0]["premiacoes"].([]any); !ok {
		t.Fatalf("premiacoes = %#v; want decoded list", out.Rows[0]["premiacoes"])
	}
}

/*
TestClean_BadValuesBecomeNull verifies the stage's contract: row-level
quality problems degrade to null, they never error and never drop the row
(only dezenas validation drops).
*/
func TestClean_BadValuesBecomeNull(t *testing.T) {
	in := records.Batch{
		Columns: []string{"loteria", "concurso", "data", "acumulou", "valorArrecadado", "dezenas"},
		Rows: []records.Record{{
			"loteria":         "megasena",
			"concurso":        json.Number("1"),
			"data":            "not a date",
			"acumulou":        "maybe",
			"valorArrecadado": "R$ 10",
			"dezenas":         nums("10", "22", "35", "41", "50", "58"),
		}},
	}
	out := Clean(in)
	if out.Len() != 1 {
		t.Fatalf("got %d rows; want 1", out.Len())
	}
	r := out.Rows[0]
	for _, col := range []string{"data", "acumulou", "valorArrecadado"} {
		if r[col] != nil {
			t.Errorf("%s = %#v; want nil", col, r[col])
		}
	}
}

/*
TestClean_EmptyBatch verifies that an empty batch flows through as an
empty batch, not a panic or an error.
*/
func TestClean_EmptyBatch(t *testing.T) {
	out := Clean(records.Batch{Columns: []string{"loteria"}})
	if out.Len() != 0 {
		t.Fatalf("got %d rows; want 0", out.Len())
	}
}
