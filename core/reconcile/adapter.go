package reconcile

import "context"

// Adapter loads one index per source. Each loader returns a nil Index when its
// backend is not configured.
type Adapter interface {
	// Name identifies the adapter and keys its cache.
	Name() string

	// LoadReference returns the documents every backend should hold.
	LoadReference(ctx context.Context) (Index, error)

	// LoadStorage lists and reads the documents in the storage bucket.
	LoadStorage(ctx context.Context) (Index, error)

	// LoadDB reads every stored document row.
	LoadDB(ctx context.Context) (Index, error)
}

// Mutator is implemented by adapters whose backends ApplyPlan can write to.
type Mutator interface {
	// PutStorage uploads item to the storage bucket.
	PutStorage(ctx context.Context, item Item) error

	// PutDB inserts or replaces item in the database.
	PutDB(ctx context.Context, item Item) error
}
