package builtin

import (
	"encoding/json"
	"strings"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// NormalizeLists rewrites list-valued columns into real structures.
// A value that is already a []any or map[string]any is kept; a textual
// encoding is parsed; anything else (including unparseable text) becomes
// null.
type NormalizeLists struct {
	Fields []string
}

func (n NormalizeLists) Apply(in records.Batch) records.Batch {
	for _, r := range in.Rows {
		for _, f := range n.Fields {
			v, ok := r[f]
			if !ok {
				continue
			}
			if dec, ok := DecodeStructured(v); ok {
				r[f] = dec
			} else {
				r[f] = nil
			}
		}
	}
	return in
}

// DecodeStructured returns v as a structured list or mapping.
//
// Already-structured values pass through. Strings are parsed as JSON first;
// the legacy feed also emits Python-style literals ("['01', '02']",
// "{'faixa': 1}"), which are rewritten to JSON and retried. Numbers inside
// parsed text are kept as json.Number, matching the dataset loader.
func DecodeStructured(v any) (any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case map[string]any:
		return t, true
	case string:
		return parseStructuredLiteral(t)
	default:
		return nil, false
	}
}

func parseStructuredLiteral(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if s[0] != '[' && s[0] != '{' {
		return nil, false
	}
	if out, ok := decodeJSONValue(s); ok {
		return out, true
	}
	return decodeJSONValue(pythonLiteralToJSON(s))
}

func decodeJSONValue(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	switch out.(type) {
	case []any, map[string]any:
		return out, true
	default:
		return nil, false
	}
}

// pythonLiteralToJSON performs the minimal rewrites needed to read the
// feed's repr()-style fields: single quotes to double quotes and the three
// keyword constants. Embedded apostrophes inside values do not occur in the
// feed (names are upper-cased ASCII); a mis-rewrite fails JSON decoding and
// degrades to null, never to a wrong value.
func pythonLiteralToJSON(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = strings.ReplaceAll(s, "None", "null")
	s = strings.ReplaceAll(s, "True", "true")
	s = strings.ReplaceAll(s, "False", "false")
	return s
}
