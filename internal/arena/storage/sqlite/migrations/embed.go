// Package migrations contains embedded SQL migrations for the SQLite store.
package migrations

import "embed"

//go:embed arena/*.sql
var ArenaFS embed.FS
