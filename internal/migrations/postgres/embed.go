// Package postgresmigrations embeds the goose SQL migrations for the
// PostgreSQL credential store.
package postgresmigrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
