package features

import (
	"sort"
	"strconv"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/transformer/builtin"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// ExpandPremiacoes expands the per-row prize-tier list into a pair of
// columns per distinct tier observed anywhere in the batch:
// ganhadores_faixa_<tier> and valor_faixa_<tier>. The column set is the
// union across all rows, so a row missing a tier holds null in that tier's
// pair. It then derives the row-wise totals:
//
//	total_ganhadores  = sum of all tier winner counts (missing counts as 0)
//	total_pago_premios = sum of all tier prize amounts
//	media_premio_real  = total_pago_premios / total_ganhadores, null when
//	                     the winner count is zero
//
// The expansion is an explicit two-pass algorithm: discover the tier key
// set over the whole batch first, project rows onto the fixed schema after.
//
// premiacoes is re-parsed defensively (text is decoded, lists pass through,
// anything else becomes null) because partition files round-trip the column
// through its textual form.
type ExpandPremiacoes struct{}

func (ExpandPremiacoes) Apply(in records.Batch) records.Batch {
	// Defensive re-parse.
	for _, r := range in.Rows {
		if dec, ok := builtin.DecodeStructured(r["premiacoes"]); ok {
			r["premiacoes"] = dec
		} else {
			r["premiacoes"] = nil
		}
	}

	// Pass 1: discover the tier key set.
	tierSet := map[string]struct{}{}
	for _, r := range in.Rows {
		for _, tier := range tiersOf(r) {
			tierSet[tier.key] = struct{}{}
		}
	}
	tiers := make([]string, 0, len(tierSet))
	for t := range tierSet {
		tiers = append(tiers, t)
	}
	sortTierKeys(tiers)

	cols := make([]string, 0, len(tiers)*2+3)
	for _, t := range tiers {
		cols = append(cols, "ganhadores_faixa_"+t, "valor_faixa_"+t)
	}
	cols = append(cols, "total_ganhadores", "total_pago_premios", "media_premio_real")
	out := in.AppendColumns(cols...)

	// Pass 2: project every row onto the fixed schema and total it.
	for _, r := range out.Rows {
		for _, t := range tiers {
			r["ganhadores_faixa_"+t] = nil
			r["valor_faixa_"+t] = nil
		}
		var totalWinners int64
		var totalPaid float64
		for _, tier := range tiersOf(r) {
			r["ganhadores_faixa_"+tier.key] = tier.winners
			r["valor_faixa_"+tier.key] = tier.prize
			if n, ok := builtin.AsInt(tier.winners); ok {
				totalWinners += n
			}
			if f, ok := builtin.AsFloat(tier.prize); ok {
				totalPaid += f
			}
		}
		r["total_ganhadores"] = totalWinners
		r["total_pago_premios"] = totalPaid
		if totalWinners > 0 {
			r["media_premio_real"] = totalPaid / float64(totalWinners)
		} else {
			r["media_premio_real"] = nil
		}
	}
	return out
}

// tierEntry is one prize tier as observed on a row.
type tierEntry struct {
	key     string
	winners any
	prize   any
}

// tiersOf extracts the tier entries of a row's premiacoes list. Entries
// without a tier identifier are skipped, mirroring the feed's occasional
// placeholder rows.
func tiersOf(r records.Record) []tierEntry {
	lst, ok := r["premiacoes"].([]any)
	if !ok {
		return nil
	}
	out := make([]tierEntry, 0, len(lst))
	for _, e := range lst {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		faixa, ok := m["faixa"]
		if !ok || faixa == nil {
			continue
		}
		key := builtin.AsString(faixa)
		if n, isInt := builtin.AsInt(faixa); isInt {
			key = strconv.FormatInt(n, 10)
		}
		winners := coerceOr(m["ganhadores"], builtin.AsInt)
		prize := coerceOr(m["valorPremio"], builtin.AsFloat)
		out = append(out, tierEntry{key: key, winners: winners, prize: prize})
	}
	return out
}

// coerceOr returns the coerced value when possible and the raw value
// otherwise, so odd feed shapes survive into the table instead of silently
// vanishing.
func coerceOr[T any](v any, coerce func(any) (T, bool)) any {
	if v == nil {
		return nil
	}
	if c, ok := coerce(v); ok {
		return c
	}
	return v
}

// sortTierKeys orders tier identifiers numerically when possible and
// lexically otherwise, so the generated column order is deterministic.
func sortTierKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.ParseInt(keys[i], 10, 64)
		b, errB := strconv.ParseInt(keys[j], 10, 64)
		if errA == nil && errB == nil {
			return a < b
		}
		if (errA == nil) != (errB == nil) {
			return errA == nil
		}
		return keys[i] < keys[j]
	})
}
