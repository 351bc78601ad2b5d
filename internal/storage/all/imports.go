// Package all wires every built-in storage backend into the storage factory.
//
// It exists purely for side effects: a blank import runs the init functions
// of each backend, which register their factories and DDL builders with the
// storage package. Binaries that should support only a subset of backends can
// import the specific backend packages instead.
package all

import (
	_ "dataforge/internal/storage/mssql"
	_ "dataforge/internal/storage/mysql"
	_ "dataforge/internal/storage/postgres"
	_ "dataforge/internal/storage/sqlite"
)
