// Package migrations embeds the goose migrations that create the diary schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
