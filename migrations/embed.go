// Package migrations embeds the SQL schema so the server and the migrate
// command work without the files on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
