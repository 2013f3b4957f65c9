// Package sqlitemigrations embeds the goose SQL migrations for the SQLite
// credential store.
package sqlitemigrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
