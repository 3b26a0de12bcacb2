package catalog

import (
	"fmt"
	"strings"
)

// Key is the constraint for primary keys and other closed enumerations:
// an int-backed type with a canonical String form.
type Key interface {
	~int
	fmt.Stringer
}

// ParseEnum resolves s to one of values, comparing case-insensitively and
// ignoring '-', '_' and ' ' separators. The error lists every valid value.
func ParseEnum[T Key](typ string, values []T, s string) (T, error) {
	want := canonical(s)
	if want != "" {
		for _, v := range values {
			if canonical(v.String()) == want {
				return v, nil
			}
		}
	}
	var zero T
	return zero, &ParseError{Type: typ, Value: s, Valid: Names(values)}
}

// Names returns the canonical names of values, in order.
func Names[T fmt.Stringer](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func canonical(s string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s)))
}

// KeySpec describes the closed primary-key enumeration of a catalog family.
type KeySpec[K Key] struct {
	// Type is the singular name of the key (e.g. "specialization").
	Type string
	// Field is the record field carrying the key, usually "id".
	Field string
	// Values is the complete key universe in declaration order.
	Values []K
}

// Parse resolves a key string against the universe.
func (s KeySpec[K]) Parse(str string) (K, error) {
	return ParseEnum(s.Type, s.Values, str)
}

// CheckKeys enforces the catalog-wide rules in order: cardinality, key validity,
// uniqueness and completeness. It stops at the first category that reports a
// problem and returns every problem of that category. On success keys[i] is
// the parsed key of records[i].
func CheckKeys[K Key](collection string, spec KeySpec[K], records []Record) ([]K, []Violation) {
	if len(records) != len(spec.Values) {
		return nil, []Violation{{
			Rule:    RuleCardinality,
			Field:   collection,
			Message: cardinalityMessage(spec, records),
		}}
	}

	keys := make([]K, len(records))
	var violations []Violation
	for i, rec := range records {
		raw, ok := rec.Text(spec.Field)
		if !ok || raw == "" {
			violations = append(violations, Violation{
				Rule:    RuleKey,
				Field:   fmt.Sprintf("%s[%d].%s", collection, i, spec.Field),
				Message: fmt.Sprintf("missing %s %s (valid values: %s)", spec.Type, spec.Field, strings.Join(Names(spec.Values), ", ")),
			})
			continue
		}
		k, err := spec.Parse(raw)
		if err != nil {
			violations = append(violations, Violation{
				Rule:    RuleKey,
				Field:   fmt.Sprintf("%s[%d].%s", collection, i, spec.Field),
				Message: err.Error(),
			})
			continue
		}
		keys[i] = k
	}
	if len(violations) > 0 {
		return nil, violations
	}

	seen := make(map[K]int, len(keys))
	for i, k := range keys {
		if first, dup := seen[k]; dup {
			violations = append(violations, Violation{
				Rule:    RuleUniqueness,
				Record:  k.String(),
				Field:   spec.Field,
				Message: fmt.Sprintf("duplicate %s %q (records %d and %d)", spec.Type, k.String(), first, i),
			})
			continue
		}
		seen[k] = i
	}
	if len(violations) > 0 {
		return nil, violations
	}

	for _, k := range spec.Values {
		if _, ok := seen[k]; !ok {
			violations = append(violations, Violation{
				Rule:    RuleCompleteness,
				Record:  k.String(),
				Field:   collection,
				Message: fmt.Sprintf("missing %s %q", spec.Type, k.String()),
			})
		}
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return keys, nil
}

// cardinalityMessage names the expected and actual counts, plus whichever keys
// can already be identified as missing or repeated.
func cardinalityMessage[K Key](spec KeySpec[K], records []Record) string {
	msg := fmt.Sprintf("expected exactly %d records, found %d", len(spec.Values), len(records))

	counts := make(map[K]int, len(records))
	for _, rec := range records {
		raw, _ := rec.Text(spec.Field)
		if k, err := spec.Parse(raw); err == nil {
			counts[k]++
		}
	}
	var missing, repeated []string
	for _, k := range spec.Values {
		switch n := counts[k]; {
		case n == 0:
			missing = append(missing, k.String())
		case n > 1:
			repeated = append(repeated, k.String())
		}
	}
	if len(missing) > 0 {
		msg += fmt.Sprintf("; missing: %s", strings.Join(missing, ", "))
	}
	if len(repeated) > 0 {
		msg += fmt.Sprintf("; duplicated: %s", strings.Join(repeated, ", "))
	}
	return msg
}
