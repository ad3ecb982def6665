// Package migrations embeds the goose SQL migrations so the binary can
// bring its schema up to date without the goose CLI.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
