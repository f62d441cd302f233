// Package loterias encodes the static domain knowledge about the lottery
// products present in the national feed: canonical product identifiers, the
// closed interval each product draws numbers from, and the feed columns that
// only exist for specific products.
//
// The tables are package-level and immutable; unknown products fall back to
// permissive defaults (no range restriction, no column drops) so that a new
// product appearing in the feed flows through the pipeline untouched rather
// than being rejected.
package loterias

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical product identifiers as they appear after NormalizeName.
const (
	MegaSena       = "megasena"
	Lotofacil      = "lotofacil"
	Timemania      = "timemania"
	DiaDeSorte     = "diadesorte"
	MaisMilionaria = "maismilionaria"
)

// Range is a closed interval of valid drawn numbers.
type Range struct {
	Min int
	Max int
}

// Contains reports whether n lies inside the closed interval.
func (r Range) Contains(n int) bool { return n >= r.Min && n <= r.Max }

// ranges maps each known product to its valid number interval.
var ranges = map[string]Range{
	MegaSena:       {1, 60},
	Lotofacil:      {1, 25},
	Timemania:      {1, 80},
	DiaDeSorte:     {1, 31},
	MaisMilionaria: {1, 50},
}

// dropColumns maps each known product to the feed columns that carry no
// meaning for it. The feed is a denormalized union schema across products,
// so e.g. timeCoracao (Timemania's "heart team") shows up on every row.
var dropColumns = map[string][]string{
	MegaSena:       {"timeCoracao", "mesSorte", "trevos"},
	Lotofacil:      {"timeCoracao", "mesSorte", "trevos"},
	MaisMilionaria: {"timeCoracao", "mesSorte"},
	Timemania:      {"mesSorte", "trevos"},
	DiaDeSorte:     {"timeCoracao", "trevos"},
}

// RangeFor returns the valid number interval for a normalized product name.
// The second return is false for unknown products, which are not range
// checked at all.
func RangeFor(loteria string) (Range, bool) {
	r, ok := ranges[loteria]
	return r, ok
}

// DropColumnsFor returns the feed columns irrelevant to the given normalized
// product name. Unknown products drop nothing.
func DropColumnsFor(loteria string) []string {
	return dropColumns[loteria]
}

// Known returns the canonical product identifiers in deterministic order.
func Known() []string {
	return []string{DiaDeSorte, Lotofacil, MaisMilionaria, MegaSena, Timemania}
}

// stripAccents decomposes, removes nonspacing marks, and recomposes, turning
// e.g. "Lotofácil" into "Lotofacil".
var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeName maps a feed product name onto its canonical identifier:
// lowercase, accents removed, separators ("-", "_", spaces) stripped.
//
//	"Mega-Sena"  -> "megasena"
//	"Lotofácil"  -> "lotofacil"
//	" dia_de_sorte " -> "diadesorte"
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	ascii, _, err := transform.String(stripAccents, s)
	if err == nil {
		s = ascii
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '-', '_', ' ':
			// separator, skip
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
