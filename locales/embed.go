// Package locales embeds the default translation files. Each file holds one
// top-level language key.
package locales

import "embed"

//go:embed *.yaml
var FS embed.FS
