package catalog

import (
	"context"
	"fmt"
	"sync"
)

// Source reads a named rules document.
// Implementations must return an error wrapping ErrResourceNotFound when the
// document does not exist. Sources do not cache.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, name string) ([]byte, error)

func (f SourceFunc) Read(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

// MemorySource serves documents from memory. It is safe for concurrent use
// and is mostly useful for tests and tooling.
type MemorySource struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemorySource creates a MemorySource seeded with docs.
func NewMemorySource(docs map[string][]byte) *MemorySource {
	m := &MemorySource{docs: make(map[string][]byte, len(docs))}
	for name, data := range docs {
		m.docs[name] = data
	}
	return m
}

// Put stores or replaces a document.
func (m *MemorySource) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = data
}

// Delete removes a document.
func (m *MemorySource) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, name)
}

func (m *MemorySource) Read(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, name)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
