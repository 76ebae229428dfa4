// Package migrations embeds the goose SQL migrations so deployments apply
// them at startup without shipping the files separately.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
