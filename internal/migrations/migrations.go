// Package migrations embeds the server's SQL schema for goose.
package migrations

import "embed"

//go:embed mysql/*.sql
var MySQL embed.FS
