// Package all wires every built-in storage backend into the storage
// factory. It exists purely for side effects: a blank import runs the init
// functions of each backend, which register their factories and replace-DDL
// builders.
//
// Importing this package makes the following kinds available:
//
//   - "sqlite"   (internal/storage/sqlite)
//   - "postgres" (internal/storage/postgres)
package all

import (
	_ "github.com/PauloHMTeixeira/etl-loteria-federal/internal/storage/postgres"
	_ "github.com/PauloHMTeixeira/etl-loteria-federal/internal/storage/sqlite"
)
