package features

import (
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/transformer/builtin"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// NumericSummary derives the scalar summary features:
//
//   - valorArrecadado of exactly 0 is treated as missing (the feed uses 0
//     where the amount was never reported) and becomes null;
//   - razaoEstimadoAcumulado = valorEstimadoProximoConcurso /
//     valorAcumuladoProximoConcurso, null when the denominator is null or
//     zero, or the numerator is null;
//   - dezenas is re-normalized to a plain []int64; one bad element nullifies
//     the whole list for that row;
//   - qtd_pares / qtd_impares count even and odd drawn numbers;
//   - range_dezenas = max - min, defined for lists of length >= 2.
type NumericSummary struct{}

func (NumericSummary) Apply(in records.Batch) records.Batch {
	out := in.AppendColumns(
		"razaoEstimadoAcumulado", "qtd_pares", "qtd_impares", "range_dezenas",
	)
	for _, r := range out.Rows {
		if f, ok := builtin.AsFloat(r["valorArrecadado"]); ok && f == 0 {
			r["valorArrecadado"] = nil
		}

		r["razaoEstimadoAcumulado"] = razao(r)
		r["dezenas"] = normalizeDezenas(r["dezenas"])

		pares, impares, rng := counts(r["dezenas"])
		r["qtd_pares"] = pares
		r["qtd_impares"] = impares
		r["range_dezenas"] = rng
	}
	return out
}

func razao(r records.Record) any {
	acumulado, ok := builtin.AsFloat(r["valorAcumuladoProximoConcurso"])
	if !ok || acumulado == 0 {
		return nil
	}
	estimado, ok := builtin.AsFloat(r["valorEstimadoProximoConcurso"])
	if !ok {
		return nil
	}
	return estimado / acumulado
}

// normalizeDezenas coerces every element to int64; any failure, or a
// non-list value, yields null.
func normalizeDezenas(v any) any {
	lst, ok := v.([]any)
	if !ok {
		// Idempotence: an already-normalized list stays as-is.
		if ints, ok := v.([]int64); ok {
			return ints
		}
		return nil
	}
	out := make([]int64, 0, len(lst))
	for _, e := range lst {
		n, ok := builtin.AsInt(e)
		if !ok {
			return nil
		}
		out = append(out, n)
	}
	return out
}

// counts returns the even/odd counts and the max-min range of a normalized
// dezenas list, or nils when the list is null (range additionally needs at
// least two elements).
func counts(v any) (pares, impares, rng any) {
	ints, ok := v.([]int64)
	if !ok {
		return nil, nil, nil
	}
	var even, odd int64
	for _, n := range ints {
		if n%2 == 0 {
			even++
		} else {
			odd++
		}
	}
	pares, impares = even, odd
	if len(ints) >= 2 {
		mn, mx := ints[0], ints[0]
		for _, n := range ints[1:] {
			if n < mn {
				mn = n
			}
			if n > mx {
				mx = n
			}
		}
		rng = mx - mn
	}
	return pares, impares, rng
}
