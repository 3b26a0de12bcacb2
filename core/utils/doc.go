// Package utils provides common utility functions for the rules catalogs.
// It includes strict conversions from decoded JSON/YAML values to Go scalars,
// shared by the document reader and the per-family validators.
package utils
