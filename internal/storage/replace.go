package storage

import (
	"fmt"
	"sync"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/ddl"
)

// ReplaceBuilder renders the backend-specific statements that destroy and
// recreate a relation (full-table replace, never append/merge). Statements
// are executed in order on the batch's scoped connection.
type ReplaceBuilder func(def ddl.TableDef) ([]string, error)

var (
	replMu  sync.RWMutex
	replFns = map[string]ReplaceBuilder{}
)

// RegisterReplaceDDL registers the ReplaceBuilder for a backend kind.
// Called from backend packages' init functions.
func RegisterReplaceDDL(kind string, fn ReplaceBuilder) {
	replMu.Lock()
	defer replMu.Unlock()
	replFns[kind] = fn
}

// BuildReplaceDDL renders the replace statements for the given kind.
func BuildReplaceDDL(kind string, def ddl.TableDef) ([]string, error) {
	replMu.RLock()
	fn, ok := replFns[kind]
	replMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no replace DDL builder registered for kind %q", kind)
	}
	return fn(def)
}
