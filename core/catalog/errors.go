package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Load failure kinds. Every *LoadError wraps exactly one of them.
var (
	// ErrResourceNotFound indicates the rules document does not exist in the source.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrUnreadable indicates the source failed for a reason other than absence.
	ErrUnreadable = errors.New("resource unreadable")
	// ErrMalformed indicates the bytes exist but are not a rules document.
	ErrMalformed = errors.New("malformed document")
	// ErrSchemaViolation indicates the document failed validation.
	ErrSchemaViolation = errors.New("schema violation")
	// ErrInternalMapping indicates a validated record could not be mapped.
	// This is a programming defect, never a content problem.
	ErrInternalMapping = errors.New("internal mapping error")
)

// ErrUnknownFilter is returned by family read APIs for an unsupported filter name.
var ErrUnknownFilter = errors.New("unknown catalog filter")

var kinds = []error{ErrResourceNotFound, ErrUnreadable, ErrMalformed, ErrSchemaViolation, ErrInternalMapping}

// LoadError is the single failure type returned by every catalog family.
type LoadError struct {
	// Family is the catalog family name (e.g. "specializations").
	Family string
	// Resource is the name of the rules document that was read.
	Resource string
	// Violations lists every schema problem found, when Kind is ErrSchemaViolation.
	Violations []Violation
	// Err is the cause; its chain always contains one of the kind sentinels.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s catalog (%s): %v", e.Family, e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Kind returns the failure kind sentinel wrapped by the error.
func (e *LoadError) Kind() error {
	for _, kind := range kinds {
		if errors.Is(e.Err, kind) {
			return kind
		}
	}
	return ErrUnreadable
}

// Rule identifies the validation rule category a violation belongs to.
// Categories are declared in the order they are checked.
type Rule int

const (
	RuleCardinality Rule = iota
	RuleKey
	RuleUniqueness
	RuleCompleteness
	RuleEnum
	RuleStructure
	RuleConsistency
)

func (r Rule) String() string {
	switch r {
	case RuleCardinality:
		return "cardinality"
	case RuleKey:
		return "key"
	case RuleUniqueness:
		return "uniqueness"
	case RuleCompleteness:
		return "completeness"
	case RuleEnum:
		return "enum"
	case RuleStructure:
		return "structure"
	case RuleConsistency:
		return "consistency"
	default:
		return "unknown"
	}
}

// Violation is one schema problem, with enough context to fix the file.
type Violation struct {
	Rule Rule `json:"rule"`
	// Record is the primary key of the offending record, empty for catalog-wide problems.
	Record string `json:"record,omitempty"`
	// Field is the dotted path of the offending field, or the collection name.
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (v Violation) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(v.Rule.String())
	b.WriteString("] ")
	switch {
	case v.Record != "" && v.Field != "":
		b.WriteString(v.Record + "." + v.Field)
	case v.Record != "":
		b.WriteString(v.Record)
	default:
		b.WriteString(v.Field)
	}
	b.WriteString(": ")
	b.WriteString(v.Message)
	return b.String()
}

// Warning records an optional-field problem that was resolved with a default.
type Warning struct {
	Record  string `json:"record"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseError is returned when a string does not name a member of a closed enumeration.
type ParseError struct {
	// Type is the logical name of the enumeration (e.g. "archetype").
	Type string
	// Value is the exact string that could not be parsed.
	Value string
	// Valid lists every accepted value in declaration order.
	Valid []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unknown %s %q (valid values: %s)", e.Type, e.Value, strings.Join(e.Valid, ", "))
}
