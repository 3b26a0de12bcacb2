package catalog

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Checker accumulates per-record violations (rules 5–7) across a whole document,
// so that every problem is reported in one pass.
type Checker struct {
	family     string
	logger     *zap.Logger
	err        error
	violations []Violation
	warnings   []Warning
}

// NewChecker creates a checker for the given family. Warnings are logged on logger.
func NewChecker(family string, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{family: family, logger: logger}
}

// Scope returns a field checker bound to one record.
func (c *Checker) Scope(record string, rec Record) *Scope {
	return &Scope{checker: c, record: record, rec: rec}
}

// Add records a violation.
func (c *Checker) Add(v Violation) {
	c.violations = append(c.violations, v)
	c.err = multierr.Append(c.err, v)
}

// Warn records and logs an optional-field problem resolved with a default.
func (c *Checker) Warn(w Warning) {
	c.warnings = append(c.warnings, w)
	c.logger.Warn("Catalog field degraded to default",
		zap.String("family", c.family),
		zap.String("record", w.Record),
		zap.String("field", w.Field),
		zap.String("detail", w.Message),
	)
}

// Violations returns every violation recorded so far.
func (c *Checker) Violations() []Violation {
	return c.violations
}

// Warnings returns every warning recorded so far.
func (c *Checker) Warnings() []Warning {
	return c.warnings
}

// Err combines every violation into one error, or nil.
func (c *Checker) Err() error {
	return c.err
}

// Scope checks the fields of one record, or of one nested object inside it.
type Scope struct {
	checker *Checker
	record  string
	path    string
	rec     Record
}

// Record returns the raw record under check.
func (s *Scope) Record() Record {
	return s.rec
}

// Nested returns a scope for a nested object, reporting fields under path.
func (s *Scope) Nested(path string, rec Record) *Scope {
	return &Scope{checker: s.checker, record: s.record, path: s.field(path), rec: rec}
}

func (s *Scope) field(name string) string {
	if s.path == "" {
		return name
	}
	return s.path + "." + name
}

// Fail records a violation against field.
func (s *Scope) Fail(rule Rule, field, format string, args ...any) {
	s.checker.Add(Violation{Rule: rule, Record: s.record, Field: s.field(field), Message: fmt.Sprintf(format, args...)})
}

// Warn records a degraded optional field.
func (s *Scope) Warn(field, format string, args ...any) {
	s.checker.Warn(Warning{Record: s.record, Field: s.field(field), Message: fmt.Sprintf(format, args...)})
}

// Text checks a required, non-blank string field.
func (s *Scope) Text(field string) string {
	v, ok := s.rec.Text(field)
	switch {
	case !s.rec.Has(field):
		s.Fail(RuleStructure, field, "required field is missing")
	case !ok:
		s.Fail(RuleStructure, field, "must be a string")
	case v == "":
		s.Fail(RuleStructure, field, "must not be blank")
	}
	return v
}

// OptionalText checks an optional string field. A non-string value degrades to "".
func (s *Scope) OptionalText(field string) string {
	if !s.rec.Has(field) {
		return ""
	}
	v, ok := s.rec.Text(field)
	if !ok {
		s.Warn(field, "not a string, using empty text")
		return ""
	}
	return v
}

// Integer checks a required integer field within [min, max].
func (s *Scope) Integer(field string, min, max int) int {
	if !s.rec.Has(field) {
		s.Fail(RuleStructure, field, "required field is missing")
		return 0
	}
	return s.integer(field, min, max)
}

// OptionalInteger checks an integer field within [min, max], defaulting to def when absent.
func (s *Scope) OptionalInteger(field string, def, min, max int) int {
	if !s.rec.Has(field) {
		return def
	}
	return s.integer(field, min, max)
}

func (s *Scope) integer(field string, min, max int) int {
	v, ok := s.rec.Integer(field)
	if !ok {
		s.Fail(RuleStructure, field, "must be an integer")
		return 0
	}
	if v < min || v > max {
		s.Fail(RuleStructure, field, "%d is out of range [%d, %d]", v, min, max)
	}
	return v
}

// Flag checks a required boolean field.
func (s *Scope) Flag(field string) bool {
	v, ok := s.rec.Flag(field)
	switch {
	case !s.rec.Has(field):
		s.Fail(RuleStructure, field, "required field is missing")
	case !ok:
		s.Fail(RuleStructure, field, "must be a boolean")
	}
	return v
}

// List checks a required list of objects holding at least min entries.
func (s *Scope) List(field string, min int) []Record {
	if !s.rec.Has(field) {
		s.Fail(RuleStructure, field, "required list is missing")
		return nil
	}
	items, ok := s.rec.List(field)
	if !ok {
		s.Fail(RuleStructure, field, "must be a list of objects")
		return nil
	}
	if len(items) < min {
		s.Fail(RuleStructure, field, "needs at least %d entries, found %d", min, len(items))
	}
	return items
}

// ExactList checks a required list of objects holding exactly n entries.
func (s *Scope) ExactList(field string, n int) []Record {
	if !s.rec.Has(field) {
		s.Fail(RuleStructure, field, "required list is missing")
		return nil
	}
	items, ok := s.rec.List(field)
	if !ok {
		s.Fail(RuleStructure, field, "must be a list of objects")
		return nil
	}
	if len(items) != n {
		s.Fail(RuleStructure, field, "needs exactly %d entries, found %d", n, len(items))
	}
	return items
}

// OptionalList checks an optional list of objects. A value of the wrong type
// degrades to an empty list.
func (s *Scope) OptionalList(field string) []Record {
	if !s.rec.Has(field) {
		return nil
	}
	items, ok := s.rec.List(field)
	if !ok {
		s.Warn(field, "not a list of objects, using empty list")
		return nil
	}
	return items
}

// Strings checks a required list of strings holding at least min entries.
func (s *Scope) Strings(field string, min int) []string {
	if !s.rec.Has(field) {
		s.Fail(RuleStructure, field, "required list is missing")
		return nil
	}
	items, ok := s.rec.Strings(field)
	if !ok {
		s.Fail(RuleStructure, field, "must be a list of strings")
		return nil
	}
	if len(items) < min {
		s.Fail(RuleStructure, field, "needs at least %d entries, found %d", min, len(items))
	}
	return items
}

// OptionalStrings checks an optional list of strings. A value of the wrong type
// degrades to an empty list.
func (s *Scope) OptionalStrings(field string) []string {
	if !s.rec.Has(field) {
		return nil
	}
	items, ok := s.rec.Strings(field)
	if !ok {
		s.Warn(field, "not a list of strings, using empty list")
		return nil
	}
	return items
}

// OptionalObject checks an optional nested object.
func (s *Scope) OptionalObject(field string) (Record, bool) {
	if !s.rec.Has(field) {
		return nil, false
	}
	rec, ok := s.rec.Object(field)
	if !ok {
		s.Fail(RuleStructure, field, "must be an object")
		return nil, false
	}
	return rec, true
}

// Consistent checks that a declared classification agrees with the one the
// record's key implies.
func (s *Scope) Consistent(field string, declared, expected fmt.Stringer) {
	if declared.String() != expected.String() {
		s.Fail(RuleConsistency, field, "declared %q but %s implies %q", declared.String(), s.record, expected.String())
	}
}

// Policy states what happens when an enum field holds an unrecognized value.
type Policy int

const (
	// Required fields fail the load when absent or unrecognized.
	Required Policy = iota
	// Optional fields fall back to the field's Default and record a warning.
	Optional
)

// EnumField declares one closed-enumeration field and its failure policy.
type EnumField[T Key] struct {
	// Field is the record field name.
	Field string
	// Type is the enumeration's name used in messages.
	Type string
	// Values is the closed set of accepted values.
	Values []T
	// Policy decides between failing and degrading.
	Policy Policy
	// Default is used for Optional fields that are absent or unrecognized.
	Default T
}

// Parse resolves a string against the field's values.
func (f EnumField[T]) Parse(str string) (T, error) {
	return ParseEnum(f.Type, f.Values, str)
}

// Check validates the field in scope and returns the resolved value.
// ok is false when a Required field produced a violation.
func (f EnumField[T]) Check(s *Scope) (T, bool) {
	raw, isText := s.rec.Text(f.Field)
	if !s.rec.Has(f.Field) {
		if f.Policy == Required {
			s.Fail(RuleEnum, f.Field, "required %s is missing (valid values: %s)", f.Type, strings.Join(Names(f.Values), ", "))
			return f.Default, false
		}
		return f.Default, true
	}
	v, err := f.Parse(raw)
	if err == nil && isText {
		return v, true
	}
	if !isText {
		err = &ParseError{Type: f.Type, Value: fmt.Sprint(s.rec[key(f.Field)]), Valid: Names(f.Values)}
	}
	if f.Policy == Required {
		s.Fail(RuleEnum, f.Field, "%v", err)
		return f.Default, false
	}
	s.Warn(f.Field, "%v; using %q", err, f.Default.String())
	return f.Default, true
}

// Value resolves the field for the mapper. Validation has already run, so an
// unparseable Required value is reported as an error for the caller to treat
// as an internal defect.
func (f EnumField[T]) Value(rec Record) (T, error) {
	raw, ok := rec.Text(f.Field)
	if !ok {
		if f.Policy == Optional {
			return f.Default, nil
		}
		return f.Default, fmt.Errorf("field %q: required %s is missing", f.Field, f.Type)
	}
	v, err := f.Parse(raw)
	if err != nil {
		if f.Policy == Optional {
			return f.Default, nil
		}
		return f.Default, fmt.Errorf("field %q: %w", f.Field, err)
	}
	return v, nil
}
