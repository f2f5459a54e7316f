// Package migrations embeds the schema migrations for the sqlite snapshot
// backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
