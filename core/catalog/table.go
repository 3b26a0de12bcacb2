package catalog

import (
	"fmt"
	"sort"
)

// TableSpec says how a family's entities are keyed, grouped and partitioned.
type TableSpec[K Key, G Key, E any] struct {
	// Key returns the primary key of an entity.
	Key func(e *E) K
	// Groups lists every group value; each gets a (possibly empty) bucket.
	Groups []G
	// GroupsOf returns the groups an entity belongs to.
	GroupsOf func(e *E) []G
	// Filters are named boolean partitions.
	Filters map[string]func(e *E) bool
	// Clone deep-copies an entity before it leaves the table. Entities
	// without nested slices or pointers may leave it nil.
	Clone func(e *E) E
}

// Table is the common part of every family index: the ordered entity list,
// the primary-key map, group buckets and named filters. It is built once and
// never mutated; every read returns copies made by TableSpec.Clone.
type Table[K Key, G Key, E any] struct {
	clone   func(e *E) E
	all     []E
	byKey   map[K]*E
	groups  map[G][]*E
	filters map[string][]*E
}

// NewTable indexes entities, which must already be in key declaration order.
func NewTable[K Key, G Key, E any](spec TableSpec[K, G, E], entities []E) *Table[K, G, E] {
	t := &Table[K, G, E]{
		clone:   spec.Clone,
		all:     entities,
		byKey:   make(map[K]*E, len(entities)),
		groups:  make(map[G][]*E, len(spec.Groups)),
		filters: make(map[string][]*E, len(spec.Filters)),
	}
	if t.clone == nil {
		t.clone = func(e *E) E { return *e }
	}
	for _, g := range spec.Groups {
		t.groups[g] = []*E{}
	}
	for name := range spec.Filters {
		t.filters[name] = []*E{}
	}

	for i := range t.all {
		e := &t.all[i]
		t.byKey[spec.Key(e)] = e
		if spec.GroupsOf != nil {
			for _, g := range spec.GroupsOf(e) {
				t.groups[g] = append(t.groups[g], e)
			}
		}
		for name, match := range spec.Filters {
			if match(e) {
				t.filters[name] = append(t.filters[name], e)
			}
		}
	}
	return t
}

// Get returns the entity for k.
func (t *Table[K, G, E]) Get(k K) (E, bool) {
	e, ok := t.byKey[k]
	if !ok {
		var zero E
		return zero, false
	}
	return t.clone(e), true
}

// Lookup returns a pointer into the table for k, for index builders that
// derive further structures. Callers must not modify it.
func (t *Table[K, G, E]) Lookup(k K) (*E, bool) {
	e, ok := t.byKey[k]
	return e, ok
}

// Find returns the first entity, in key declaration order, that match accepts.
// match sees the table's own entity and must not modify it.
func (t *Table[K, G, E]) Find(match func(e *E) bool) (E, bool) {
	for i := range t.all {
		if match(&t.all[i]) {
			return t.clone(&t.all[i]), true
		}
	}
	var zero E
	return zero, false
}

// All returns every entity in key declaration order.
func (t *Table[K, G, E]) All() []E {
	out := make([]E, len(t.all))
	for i := range t.all {
		out[i] = t.clone(&t.all[i])
	}
	return out
}

// Group returns the entities belonging to g, never nil.
func (t *Table[K, G, E]) Group(g G) []E {
	return t.values(t.groups[g])
}

// Filter returns the entities matching the named filter.
func (t *Table[K, G, E]) Filter(name string) ([]E, error) {
	matched, ok := t.filters[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownFilter, name, t.FilterNames())
	}
	return t.values(matched), nil
}

// FilterNames lists the supported filter names, sorted.
func (t *Table[K, G, E]) FilterNames() []string {
	names := make([]string, 0, len(t.filters))
	for name := range t.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of entities.
func (t *Table[K, G, E]) Count() int {
	return len(t.all)
}

func (t *Table[K, G, E]) values(ptrs []*E) []E {
	out := make([]E, len(ptrs))
	for i, e := range ptrs {
		out[i] = t.clone(e)
	}
	return out
}
