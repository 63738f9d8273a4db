// Package migrations embeds the PostgreSQL schema migrations for the nodes
// store, applied through golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
