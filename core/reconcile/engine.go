package reconcile

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrUnknownDocument is returned by ReconcileOne when no source holds the document.
var ErrUnknownDocument = errors.New("document not found in any source")

// ReconcileAll reconciles every document known to any source, sorted by name.
func ReconcileAll(ctx context.Context, spec *Spec) ([]ReconcileResult, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	return reconcileFromCache(cache), nil
}

// ReconcileOne reconciles a single document. It reuses cached indices when
// the spec enables caching.
func ReconcileOne(ctx context.Context, spec *Spec, name string) (*ReconcileResult, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	if !cache.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, name)
	}
	result := buildResult(name, cache)
	return &result, nil
}

func reconcileFromCache(cache *ReconcileCache) []ReconcileResult {
	names := buildUnion(cache.Reference, cache.Storage, cache.DB)
	results := make([]ReconcileResult, 0, len(names))
	for _, name := range names {
		results = append(results, buildResult(name, cache))
	}
	return results
}

// buildUnion returns the sorted names held by any index.
func buildUnion(indices ...Index) []string {
	union := make(map[string]struct{})
	for _, idx := range indices {
		for name := range idx {
			union[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(union))
}

// buildResult creates a ReconcileResult for a single name.
func buildResult(name string, cache *ReconcileCache) ReconcileResult {
	ref, inRef := cache.Reference[name]
	result := ReconcileResult{
		Name:      name,
		Version:   ref.Version,
		Reference: inRef,
		Mismatch:  []string{},
	}
	result.Storage = compare("storage", name, ref, inRef, cache.Storage, &result.Mismatch)
	result.Database = compare("database", name, ref, inRef, cache.DB, &result.Mismatch)
	return result
}

// compare classifies one backend copy and appends its differences to mismatch.
func compare(label, name string, ref Item, inRef bool, idx Index, mismatch *[]string) State {
	if idx == nil {
		return StateSkipped
	}
	got, ok := idx[name]
	switch {
	case !ok && inRef:
		return StateMissing
	case !ok:
		return StateAbsent
	case !inRef:
		return StateExtra
	}

	state := StatePresent
	if got.Version != ref.Version {
		*mismatch = append(*mismatch, fmt.Sprintf("%s version: reference=%s %s=%s", label, orNone(ref.Version), label, orNone(got.Version)))
		state = StateMismatch
	}
	if got.Checksum != ref.Checksum {
		*mismatch = append(*mismatch, fmt.Sprintf("%s checksum: reference=%s %s=%s", label, short(ref.Checksum), label, short(got.Checksum)))
		state = StateMismatch
	}
	return state
}

func orNone(v string) string {
	if v == "" {
		return "none"
	}
	return v
}

func short(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
