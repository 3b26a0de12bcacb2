package rules

import (
	"strconv"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
)

// Indexed formats the path of the i-th element of a list field.
func Indexed(field string, i int) string {
	return field + "[" + strconv.Itoa(i) + "]"
}

// TextList returns a list-of-strings field, or an empty list when it is absent
// or was degraded during validation.
func TextList(rec catalog.Record, field string) []string {
	items, ok := rec.Strings(field)
	if !ok || items == nil {
		return []string{}
	}
	return items
}
