// Package clean implements the first pipeline stage: structural cleaning and
// validation of a single lottery's draw batch.
//
// The stage never raises for row-level data quality; bad values become null
// and unsalvageable rows are dropped. An input where every row fails comes
// back as an empty batch, not an error.
package clean

import (
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/transformer"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/transformer/builtin"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// MonetaryColumns are the feed's money-valued fields, coerced to nullable
// float64 by the cleaning stage.
var MonetaryColumns = []string{
	"valorArrecadado",
	"valorAcumuladoConcurso_0_5",
	"valorAcumuladoConcursoEspecial",
	"valorAcumuladoProximoConcurso",
	"valorEstimadoProximoConcurso",
}

// ListColumns are the fields that hold nested structures in the feed, either
// as real JSON arrays or as stringified literals.
var ListColumns = []string{
	"dezenas",
	"dezenasOrdemSorteio",
	"premiacoes",
	"localGanhadores",
}

// chain builds the cleaning chain. Order matters: column pruning first, then
// dedup and typing, then list decoding, and only then the draw-size/range
// validation that depends on decoded lists.
func chain() transformer.Chain {
	types := map[string]string{
		"concurso":        "int",
		"data":            "date",
		"proximoConcurso": "date",
		"acumulou":        "bool",
	}
	for _, c := range MonetaryColumns {
		types[c] = "money"
	}
	return transformer.Chain{
		builtin.DropLotteryColumns{},
		builtin.DeDup{Keys: []string{"concurso"}},
		builtin.Coerce{Types: types},
		builtin.NormalizeLists{Fields: ListColumns},
		builtin.ValidateDezenas{},
	}
}

// Clean runs the full cleaning stage on one lottery's batch and returns the
// validated, typed batch.
func Clean(in records.Batch) records.Batch {
	return chain().Apply(in)
}
