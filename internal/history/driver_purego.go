//go:build !cgo_sqlite

package history

import (
	_ "modernc.org/sqlite" // default: pure Go SQLite driver
)

const driverName = "sqlite"
