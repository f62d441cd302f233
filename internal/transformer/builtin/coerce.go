// Package builtin contains the reusable batch transformers that make up the
// cleaning stage. All of them share one policy: a value that cannot be
// coerced becomes null and a row that cannot be salvaged is dropped; nothing
// at row level is ever surfaced as an error (see DESIGN.md).
package builtin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// Coerce converts typed columns in place. Types maps a field name to one of:
//
//	"int"   -> int64, nullable
//	"money" -> float64, nullable
//	"date"  -> time.Time, day-first mixed formats, nullable
//	"bool"  -> tri-state bool (true / false / nil for unknown)
//
// Coercion failure writes nil, never an error. Fields absent from a row are
// left absent.
type Coerce struct {
	Types map[string]string
}

func (c Coerce) Apply(in records.Batch) records.Batch {
	if len(c.Types) == 0 {
		return in
	}
	for _, r := range in.Rows {
		for field, kind := range c.Types {
			v, ok := r[field]
			if !ok {
				continue
			}
			if v == nil {
				continue
			}
			switch kind {
			case "int":
				if n, ok := AsInt(v); ok {
					r[field] = n
				} else {
					r[field] = nil
				}
			case "money":
				if f, ok := AsFloat(v); ok {
					r[field] = f
				} else {
					r[field] = nil
				}
			case "date":
				if t, ok := AsDate(v); ok {
					r[field] = t
				} else {
					r[field] = nil
				}
			case "bool":
				if b, ok := AsBool(v); ok {
					r[field] = b
				} else {
					r[field] = nil
				}
			}
		}
	}
	return in
}

// AsInt coerces v to int64. Accepts integer kinds, integral floats,
// json.Number and decimal strings.
func AsInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return int64(t), true
		}
		return 0, false
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		// "10.0" style numbers still count as integral.
		if f, err := t.Float64(); err == nil && f == float64(int64(f)) {
			return int64(f), true
		}
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// AsFloat coerces v to float64. Accepts numeric kinds, json.Number and
// decimal strings.
func AsFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// AsBool coerces v to a bool. Accepts bool, the usual textual forms and 0/1.
// Anything else reports ok=false, which the caller stores as null (the
// "unknown" arm of the tri-state).
func AsBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "t", "1", "sim":
			return true, true
		case "false", "f", "0", "nao", "não":
			return false, true
		}
		return false, false
	default:
		if n, ok := AsInt(v); ok && (n == 0 || n == 1) {
			return n == 1, true
		}
		return false, false
	}
}

// dateLayouts are tried in order. Day-first forms come first because the
// feed is predominantly dd/mm/yyyy; ISO forms cover the API's newer exports.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// AsDate coerces v to a time.Time, accepting time.Time as-is and strings in
// mixed day-first formats.
func AsDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// AsString renders v as a string for key building and name lookups.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprint(t)
	}
}
