package features

import (
	"time"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// Calendar derives day/month/year from both date columns, plus the ISO week
// number and the weekday index (Monday = 0) of the draw date. Null dates
// yield null features.
type Calendar struct{}

func (Calendar) Apply(in records.Batch) records.Batch {
	out := in.AppendColumns(
		"data_dia", "data_mes", "data_ano",
		"semana_ano_concurso", "dia_semana_concurso",
		"proximoConcurso_dia", "proximoConcurso_mes", "proximoConcurso_ano",
	)
	for _, r := range out.Rows {
		if t, ok := r["data"].(time.Time); ok {
			r["data_dia"] = int64(t.Day())
			r["data_mes"] = int64(t.Month())
			r["data_ano"] = int64(t.Year())
			_, week := t.ISOWeek()
			r["semana_ano_concurso"] = int64(week)
			r["dia_semana_concurso"] = int64((int(t.Weekday()) + 6) % 7)
		} else {
			r["data_dia"] = nil
			r["data_mes"] = nil
			r["data_ano"] = nil
			r["semana_ano_concurso"] = nil
			r["dia_semana_concurso"] = nil
		}
		if t, ok := r["proximoConcurso"].(time.Time); ok {
			r["proximoConcurso_dia"] = int64(t.Day())
			r["proximoConcurso_mes"] = int64(t.Month())
			r["proximoConcurso_ano"] = int64(t.Year())
		} else {
			r["proximoConcurso_dia"] = nil
			r["proximoConcurso_mes"] = nil
			r["proximoConcurso_ano"] = nil
		}
	}
	return out
}
