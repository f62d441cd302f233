// Package ddl renders SQLite statements for the persistence stage's
// full-table replace. SQLite is dynamically typed, so the mapping prefers
// canonical affinities; dates are stored as ISO-8601 TEXT.
package ddl

import (
	"fmt"
	"strings"

	gddl "github.com/PauloHMTeixeira/etl-loteria-federal/internal/ddl"
)

// MapType maps a logical column kind onto a SQLite column type.
func MapType(kind string) string {
	switch kind {
	case "int":
		return "INTEGER"
	case "bool":
		return "INTEGER" // 0/1
	case "float":
		return "REAL"
	case "date":
		return "TEXT" // ISO-8601
	default:
		return "TEXT"
	}
}

// BuildReplaceSQL renders the statements that destroy and recreate the
// relation: DROP TABLE IF EXISTS followed by CREATE TABLE.
func BuildReplaceSQL(t gddl.TableDef) ([]string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return nil, fmt.Errorf("sqlite ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("sqlite ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cname := strings.TrimSpace(c.Name)
		if cname == "" {
			return nil, fmt.Errorf("sqlite ddl: column with empty name in table %s", name)
		}
		cols = append(cols, QuoteIdent(cname)+" "+MapType(c.Kind))
	}

	return []string{
		fmt.Sprintf("DROP TABLE IF EXISTS %s;", QuoteIdent(name)),
		fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", QuoteIdent(name), strings.Join(cols, ",\n  ")),
	}, nil
}

// QuoteIdent double-quotes an identifier, escaping embedded quotes.
func QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
