package catalog

// Tabled is implemented by family indices built around a Table.
type Tabled[K Key, G Key, E any] interface {
	Table() *Table[K, G, E]
}

// Reader is the common read API of a family catalog. Every method triggers
// the load on first use and returns the *LoadError if it fails.
type Reader[K Key, G Key, E any, X Tabled[K, G, E]] struct {
	*Catalog[K, E, X]
}

// NewReader wraps a catalog whose index is built around a Table.
func NewReader[K Key, G Key, E any, X Tabled[K, G, E]](c *Catalog[K, E, X]) *Reader[K, G, E, X] {
	return &Reader[K, G, E, X]{Catalog: c}
}

func (r *Reader[K, G, E, X]) table() (*Table[K, G, E], error) {
	idx, err := r.Index()
	if err != nil {
		return nil, err
	}
	return idx.Table(), nil
}

// Get returns the entity for k. ok is false if the key has no entity.
func (r *Reader[K, G, E, X]) Get(k K) (E, bool, error) {
	var zero E
	t, err := r.table()
	if err != nil {
		return zero, false, err
	}
	e, ok := t.Get(k)
	return e, ok, nil
}

// All returns every entity in key declaration order.
func (r *Reader[K, G, E, X]) All() ([]E, error) {
	t, err := r.table()
	if err != nil {
		return nil, err
	}
	return t.All(), nil
}

// ByGroup returns the entities of group g. Unpopulated groups yield an empty slice.
func (r *Reader[K, G, E, X]) ByGroup(g G) ([]E, error) {
	t, err := r.table()
	if err != nil {
		return nil, err
	}
	return t.Group(g), nil
}

// Filter returns the entities matching a named filter, or ErrUnknownFilter.
func (r *Reader[K, G, E, X]) Filter(name string) ([]E, error) {
	t, err := r.table()
	if err != nil {
		return nil, err
	}
	return t.Filter(name)
}

// Exists reports whether k has an entity.
func (r *Reader[K, G, E, X]) Exists(k K) (bool, error) {
	_, ok, err := r.Get(k)
	return ok, err
}

// Count returns the number of entities.
func (r *Reader[K, G, E, X]) Count() (int, error) {
	t, err := r.table()
	if err != nil {
		return 0, err
	}
	return t.Count(), nil
}
