// Package registry wires the six rules catalogs to a single document source.
//
// The registry is what commands and the HTTP server hold: it warms all
// families at once, reports their status, resolves "family + id" lookups for
// the CLI and hands out the per-family HTTP features.
package registry
