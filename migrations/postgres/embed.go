// Package postgres embeds SQL migration files.
package postgres

import "embed"

// FS contains the schema migrations (*_up.sql / *_down.sql pairs).
//
//go:embed *.sql
var FS embed.FS
