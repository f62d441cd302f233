// Package features implements the second pipeline stage: deriving analytical
// columns from a cleaned draw batch.
//
// Every derivation is column-additive; the stage never drops rows. It
// assumes the cleaning stage already ran: dates are time.Time, money is
// float64 and list columns are decoded structures. It is deliberately not
// defensive about those preconditions — the one exception is premiacoes,
// which is re-parsed because older partition files round-trip it through
// text.
package features

import (
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/transformer"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// chain lists the derivations in their fixed order. The order only matters
// for NumericSummary, which re-normalizes dezenas after the per-number
// expansion has read the raw elements.
func chain() transformer.Chain {
	return transformer.Chain{
		Calendar{},
		ExpandDezenas{},
		SplitLocal{},
		ExpandPremiacoes{},
		WinnerLocations{},
		NumericSummary{},
	}
}

// Enrich runs the full feature stage on a cleaned batch.
func Enrich(in records.Batch) records.Batch {
	return chain().Apply(in)
}
