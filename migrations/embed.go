// Package migrations embeds the SQL schema migrations so binaries and tests
// can run them without locating the directory on disk.
package migrations

import "embed"

// FS holds every *.sql migration in this directory
//
//go:embed *.sql
var FS embed.FS
