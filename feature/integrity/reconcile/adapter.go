package reconcile

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/database"
	"github.com/southpawriter02/rune-rust-sub041/core/reconcile"
	"github.com/southpawriter02/rune-rust-sub041/core/storage"
	"github.com/southpawriter02/rune-rust-sub041/feature/integrity/checks"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DocumentAdapter implements reconcile.Adapter and reconcile.Mutator for the
// rules documents. The embedded defaults are the reference.
type DocumentAdapter struct {
	id     string
	client storage.Client
	bucket string
	prefix string
	db     *gorm.DB
	names  []string
	read   checks.ReadFunc
	logger *zap.Logger
}

// NewDocumentAdapter creates an adapter over names. client and db may be nil.
func NewDocumentAdapter(client storage.Client, bucket, prefix string, db *gorm.DB, names []string, read checks.ReadFunc, logger *zap.Logger) *DocumentAdapter {
	return &DocumentAdapter{
		id:     uuid.NewString(),
		client: client,
		bucket: bucket,
		prefix: prefix,
		db:     db,
		names:  names,
		read:   read,
		logger: logger,
	}
}

// Name is unique per adapter, so every adapter caches its own indices.
func (a *DocumentAdapter) Name() string {
	return "rules-documents/" + a.id
}

// LoadReference reads the default body of every document.
func (a *DocumentAdapter) LoadReference(ctx context.Context) (reconcile.Index, error) {
	idx := make(reconcile.Index, len(a.names))
	for _, name := range a.names {
		body, err := a.read(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read default document %s: %w", name, err)
		}
		idx[name] = reconcile.NewItem(name, body)
	}
	return idx, nil
}

// LoadStorage lists the rules documents directly under the prefix and reads
// each of them. A missing bucket yields an empty index.
func (a *DocumentAdapter) LoadStorage(ctx context.Context) (reconcile.Index, error) {
	if a.client == nil {
		return nil, nil
	}

	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	idx := reconcile.Index{}
	if !exists {
		return idx, nil
	}

	opts := minio.ListObjectsOptions{Prefix: a.prefix, Recursive: true}
	for obj := range a.client.ListObjects(ctx, a.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", a.prefix, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, a.prefix)
		if strings.Contains(name, "/") || !isDocument(name) {
			continue
		}

		body, err := storage.ReadObject(ctx, a.client, a.bucket, obj.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", obj.Key, err)
		}
		idx[name] = reconcile.NewItem(name, body)
	}
	return idx, nil
}

// LoadDB reads every row of the document table. A missing table yields an
// empty index.
func (a *DocumentAdapter) LoadDB(ctx context.Context) (reconcile.Index, error) {
	if a.db == nil {
		return nil, nil
	}

	idx := reconcile.Index{}
	if !a.db.WithContext(ctx).Migrator().HasTable(&database.RuleDocument{}) {
		return idx, nil
	}

	var rows []database.RuleDocument
	if err := a.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query rule documents: %w", err)
	}
	for _, row := range rows {
		item := reconcile.NewItem(row.Name, []byte(row.Body))
		if row.Version != "" {
			item.Version = row.Version
		}
		idx[row.Name] = item
	}
	return idx, nil
}

// PutStorage uploads item, creating the bucket when needed.
func (a *DocumentAdapter) PutStorage(ctx context.Context, item reconcile.Item) error {
	if a.client == nil {
		return fmt.Errorf("storage is not configured")
	}
	return checks.FixDocuments(ctx, a.client, a.bucket, a.prefix, a.logger, []string{item.Name}, body(item))
}

// PutDB migrates the table if needed and stores item.
func (a *DocumentAdapter) PutDB(ctx context.Context, item reconcile.Item) error {
	if a.db == nil {
		return fmt.Errorf("database is not configured")
	}
	return checks.FixSchema(ctx, a.db, a.logger, []string{item.Name}, body(item))
}

func isDocument(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// body serves the item's own bytes to the fix helpers.
func body(item reconcile.Item) checks.ReadFunc {
	return func(name string) ([]byte, error) {
		return item.Body, nil
	}
}
