package features

import (
	"strings"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/transformer/builtin"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// SplitLocal decomposes the free-text venue column
// "<name> em <city>, <state>" into nome_local, cidade and estado, splitting
// on the first " em " and the last ", ". A batch without a local column is
// left untouched.
type SplitLocal struct{}

func (SplitLocal) Apply(in records.Batch) records.Batch {
	if !in.HasColumn("local") {
		return in
	}
	out := in.AppendColumns("nome_local", "cidade", "estado")
	for _, r := range out.Rows {
		s, ok := r["local"].(string)
		if !ok {
			r["nome_local"] = nil
			r["cidade"] = nil
			r["estado"] = nil
			continue
		}
		nome, rest, found := strings.Cut(s, " em ")
		r["nome_local"] = nome
		if !found {
			r["cidade"] = nil
			r["estado"] = nil
			continue
		}
		if j := strings.LastIndex(rest, ", "); j >= 0 {
			r["cidade"] = rest[:j]
			r["estado"] = rest[j+2:]
		} else {
			r["cidade"] = rest
			r["estado"] = nil
		}
	}
	return out
}

// onlineMunicipio is the sentinel the feed uses for tickets bought through
// the web channel instead of a physical retailer.
const onlineMunicipio = "CANAL ELETRONICO"

// WinnerLocations normalizes localGanhadores to a list, extracts the first
// winner's municipality and state, and flags online tickets (sentinel
// municipality, or state code "BR").
type WinnerLocations struct{}

func (WinnerLocations) Apply(in records.Batch) records.Batch {
	out := in.AppendColumns("municipioGanhador", "ufGanhador", "ticketGanhadorOnline")
	for _, r := range out.Rows {
		lst, ok := r["localGanhadores"].([]any)
		if !ok {
			lst = []any{}
		}
		r["localGanhadores"] = lst

		r["municipioGanhador"] = nil
		r["ufGanhador"] = nil
		r["ticketGanhadorOnline"] = false
		if len(lst) == 0 {
			continue
		}
		first, ok := lst[0].(map[string]any)
		if !ok {
			continue
		}
		r["municipioGanhador"] = first["municipio"]
		r["ufGanhador"] = first["uf"]

		municipio := strings.ToUpper(strings.TrimSpace(builtin.AsString(first["municipio"])))
		uf := strings.ToUpper(strings.TrimSpace(builtin.AsString(first["uf"])))
		r["ticketGanhadorOnline"] = municipio == onlineMunicipio || uf == "BR"
	}
	return out
}
