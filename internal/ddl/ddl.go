// Package ddl holds the backend-agnostic relation model used by the
// persistence stage. Backends map the logical column kinds onto their own
// SQL types and render the actual statements.
package ddl

// ColumnDef describes one column of a relation with a logical kind:
// "int", "float", "bool", "date" or "text".
type ColumnDef struct {
	Name string
	Kind string
}

// TableDef describes a relation to be created. Name is the bare relation
// name (the normalized lottery identifier); backends quote it.
type TableDef struct {
	Name    string
	Columns []ColumnDef
}
