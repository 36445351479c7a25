// Package migrations embeds SQL schema migrations applied on startup.
package migrations

import "embed"

// FS holds the goose migration files.
//
//go:embed *.sql
var FS embed.FS
