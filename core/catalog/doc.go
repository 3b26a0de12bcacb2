// Package catalog provides the lazy, validated, indexed rules catalog engine
// shared by every rules family (attributes, archetypes, specializations, ...).
//
// A catalog reads one rules document the first time it is queried and runs a
// one-shot pipeline:
//
//	Source.Read → Decode → CheckKeys → per-record Validate → Map → Index
//
// # Validation
//
// Catalog-wide rules run first, in order, and stop at the first failing category:
// cardinality, key validity, uniqueness, completeness. Per-record rules (field
// enums, structural sub-invariants, cross-field consistency) then run over every
// record and are reported together.
//
// Each enum field declares its Policy explicitly through EnumField: Required
// fields fail the load, Optional fields degrade to a named default and record a
// Warning that is also logged.
//
// # Concurrency
//
// The published snapshot lives behind an atomic pointer. A reader that finds it
// unset joins a singleflight section keyed by the resource, re-checks the pointer,
// and runs the pipeline only if it is still unset. Every caller in the same flight
// receives the same snapshot or the same *LoadError. Failures are never stored, so
// the next call retries from scratch.
//
// # Errors
//
// Every failure is a *LoadError wrapping one of ErrResourceNotFound, ErrUnreadable,
// ErrMalformed, ErrSchemaViolation or ErrInternalMapping:
//
//	if errors.Is(err, catalog.ErrSchemaViolation) {
//	    var le *catalog.LoadError
//	    errors.As(err, &le)
//	    for _, v := range le.Violations { fmt.Println(v) }
//	}
package catalog
