// Package migrations ships the goose migrations inside the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
