// Package migrations embeds the goose migrations that bootstrap the local
// key-value table.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
