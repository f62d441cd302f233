// Package ddl renders Postgres statements for the persistence stage's
// full-table replace.
package ddl

import (
	"fmt"
	"strings"

	gddl "github.com/PauloHMTeixeira/etl-loteria-federal/internal/ddl"
)

// MapType maps a logical column kind onto a Postgres column type.
func MapType(kind string) string {
	switch kind {
	case "int":
		return "BIGINT"
	case "bool":
		return "BOOLEAN"
	case "float":
		return "DOUBLE PRECISION"
	case "date":
		return "DATE"
	default:
		return "TEXT"
	}
}

// BuildReplaceSQL renders DROP TABLE IF EXISTS plus CREATE TABLE for the
// given relation.
func BuildReplaceSQL(t gddl.TableDef) ([]string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return nil, fmt.Errorf("postgres ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("postgres ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cname := strings.TrimSpace(c.Name)
		if cname == "" {
			return nil, fmt.Errorf("postgres ddl: column with empty name in table %s", name)
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
