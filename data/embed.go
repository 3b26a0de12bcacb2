// Package data holds the rules documents shipped with the binary.
package data

import "embed"

// FS contains one JSON document per catalog family, named <family>.json.
//
//go:embed *.json
var FS embed.FS
