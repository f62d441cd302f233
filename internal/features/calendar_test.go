package features

import (
	"testing"
	"time"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

/*
TestCalendarApply verifies the derived calendar columns for a known date:
2024-10-05 is a Saturday (weekday index 5 with Monday = 0) in ISO week 40.
*/
func TestCalendarApply(t *testing.T) {
	draw := time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)
	next := time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC)
	in := records.Batch{
		Columns: []string{"data", "proximoConcurso"},
		Rows:    []records.Record{{"data": draw, "proximoConcurso": next}},
	}
	r := Calendar{}.Apply(in).Rows[0]

	want := map[string]int64{
		"data_dia":            5,
		"data_mes":            10,
		"data_ano":            2024,
		"semana_ano_concurso": 40,
		"dia_semana_concurso": 5,
		"proximoConcurso_dia": 9,
		"proximoConcurso_mes": 10,
		"proximoConcurso_ano": 2024,
	}
	for col, w := range want {
		if got, ok := r[col].(int64); !ok || got != w {
			t.Errorf("%s = %#v; want %d", col, r[col], w)
		}
	}
}

/*
TestCalendarApply_NullDates verifies that a null date yields null calendar
features instead of zero values.
*/
func TestCalendarApply_NullDates(t *testing.T) {
	in := records.Batch{
		Columns: []string{"data", "proximoConcurso"},
		Rows:    []records.Record{{"data": nil, "proximoConcurso": nil}},
	}
	r := Calendar{}.Apply(in).Rows[0]
	for _, col := range []string{
		"data_dia", "data_mes", "data_ano",
		"semana_ano_concurso", "dia_semana_concurso",
		"proximoConcurso_dia", "proximoConcurso_mes", "proximoConcurso_ano",
	} {
		if r[col] != nil {
			t.Errorf("%s = %#v; want nil", col, r[col])
		}
	}
}

/*
TestCalendarApply_MondayIsZero pins the weekday convention.
*/
func TestCalendarApply_MondayIsZero(t *testing.T) {
	monday := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)
	in := records.Batch{
		Columns: []string{"data"},
		Rows:    []records.Record{{"data": monday}},
	}
	r := Calendar{}.Apply(in).Rows[0]
	if got := r["dia_semana_concurso"].(int64); got != 0 {
		t.Fatalf("dia_semana_concurso for a Monday = %d; want 0", got)
	}
}
