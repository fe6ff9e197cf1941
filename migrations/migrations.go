// Package migrations embeds the early_access schema files applied at boot.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
