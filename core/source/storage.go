package source

import (
	"context"
	"fmt"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/core/storage"
)

// Storage reads documents from an object storage bucket.
type Storage struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorage creates a source reading <prefix><name> from bucket.
func NewStorage(client storage.Client, bucket, prefix string) *Storage {
	return &Storage{client: client, bucket: bucket, prefix: prefix}
}

// Object returns the object key a document name maps to.
func (s *Storage) Object(name string) string {
	return s.prefix + name
}

func (s *Storage) Read(ctx context.Context, name string) ([]byte, error) {
	key := s.Object(name)
	b, err := storage.ReadObject(ctx, s.client, s.bucket, key)
	if err != nil {
		return nil, s.wrap(key, err)
	}
	return b, nil
}

func (s *Storage) wrap(key string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%w: %s/%s", catalog.ErrResourceNotFound, s.bucket, key)
	}
	return fmt.Errorf("failed to get object %s/%s: %w", s.bucket, key, err)
}

// Describe names the source for status output.
func (s *Storage) Describe() string {
	return "storage:" + s.bucket + "/" + s.prefix
}
