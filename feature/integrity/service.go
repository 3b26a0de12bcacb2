package integrity

import (
	"context"
	"errors"
	"time"

	"github.com/southpawriter02/rune-rust-sub041/core/reconcile"
	"github.com/southpawriter02/rune-rust-sub041/core/storage"
	"github.com/southpawriter02/rune-rust-sub041/data"
	"github.com/southpawriter02/rune-rust-sub041/feature/integrity/checks"
	docsReconcile "github.com/southpawriter02/rune-rust-sub041/feature/integrity/reconcile"
	"github.com/southpawriter02/rune-rust-sub041/feature/registry"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotConfigured is returned by checks whose backend was not provided.
var ErrNotConfigured = errors.New("backend not configured")

// ReconcileTTL is how long reconcile indices are reused between requests.
const ReconcileTTL = 30 * time.Second

// Service handles integrity checks.
type Service struct {
	registry *registry.Registry
	client   storage.Client
	bucket   string
	prefix   string
	db       *gorm.DB
	read     checks.ReadFunc
	spec     *reconcile.Spec
	logger   *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil, in
// which case their checks report ErrNotConfigured.
func NewService(reg *registry.Registry, client storage.Client, bucket, prefix string, db *gorm.DB, logger *zap.Logger) *Service {
	read := data.FS.ReadFile
	adapter := docsReconcile.NewDocumentAdapter(client, bucket, prefix, db, registry.Resources, read, logger)
	return &Service{
		registry: reg,
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		db:       db,
		read:     read,
		spec:     &reconcile.Spec{Adapter: adapter, CacheTTL: ReconcileTTL},
		logger:   logger,
	}
}

// CheckCatalogs loads every catalog and reports each family.
func (s *Service) CheckCatalogs() []checks.CatalogReport {
	return checks.CheckCatalogs(s.registry.Loaders())
}

// CheckDocuments returns the rules documents missing from the bucket.
func (s *Service) CheckDocuments(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}
	return checks.CheckDocuments(ctx, s.client, s.bucket, s.prefix, registry.Resources)
}

// FixDocuments uploads the embedded defaults of the missing documents.
func (s *Service) FixDocuments(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	defer reconcile.InvalidateCache(s.spec)
	return checks.FixDocuments(ctx, s.client, s.bucket, s.prefix, s.logger, missing, s.read)
}

// CheckSchema inspects the rules document table.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNotConfigured
	}
	return checks.CheckSchema(ctx, s.db, registry.Resources)
}

// FixSchema migrates the table and stores the embedded defaults of the missing documents.
func (s *Service) FixSchema(ctx context.Context, missing []string) error {
	if s.db == nil {
		return ErrNotConfigured
	}
	defer reconcile.InvalidateCache(s.spec)
	return checks.FixSchema(ctx, s.db, s.logger, missing, s.read)
}

// Reconcile compares the embedded defaults with the storage and database
// copies and, when opts allow it, writes the planned restores and syncs.
func (s *Service) Reconcile(ctx context.Context, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, int, error) {
	if s.client == nil && s.db == nil {
		return nil, 0, ErrNotConfigured
	}
	return reconcile.ReconcileAndApply(ctx, s.spec, opts)
}

// ReconcileDocument reconciles one document by resource name.
func (s *Service) ReconcileDocument(ctx context.Context, name string) (*reconcile.ReconcileResult, error) {
	if s.client == nil && s.db == nil {
		return nil, ErrNotConfigured
	}
	return reconcile.ReconcileOne(ctx, s.spec, name)
}
