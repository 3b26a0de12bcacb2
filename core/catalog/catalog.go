package catalog

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Definition describes one catalog family: where its records live, how they are
// keyed and validated, and how they become entities and indices.
type Definition[K Key, E any, X any] struct {
	// Family names the catalog and the top-level array holding its records.
	Family string
	// Resource is the default document name.
	Resource string
	// Keys is the closed primary-key enumeration.
	Keys KeySpec[K]
	// Versions is a semver constraint the document "version" must satisfy.
	// Empty disables the check.
	Versions string
	// Validate checks one record (field enums, structure, consistency).
	Validate func(s *Scope, key K)
	// ValidateAll optionally checks invariants spanning several records.
	ValidateAll func(c *Checker, records map[K]Record)
	// Map converts one validated record into its entity.
	Map func(key K, rec Record) (E, error)
	// Index builds every lookup structure from the ordered entities.
	Index func(entities []E) X
}

// Snapshot is the immutable result of one successful load.
type Snapshot[X any] struct {
	Index    X
	Resource string
	Warnings []Warning
	LoadedAt time.Time
}

// Status summarizes a catalog for health reporting.
type Status struct {
	Family   string    `json:"family"`
	Resource string    `json:"resource"`
	Ready    bool      `json:"ready"`
	Loads    int64     `json:"loads"`
	Warnings int       `json:"warnings"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
}

// Loader is the family-independent view of a catalog.
type Loader interface {
	Family() string
	Warm() error
	Status() Status
}

// Options tunes a catalog instance.
type Options struct {
	// Resource overrides the definition's default document name.
	Resource string
}

// Option mutates Options.
type Option func(*Options)

// WithResource reads the catalog from name instead of the default resource.
func WithResource(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Resource = name
		}
	}
}

// Catalog loads a family once, on first use, and then serves its index
// without locking.
//
// State moves Uninitialized → Loading → Ready, or back to Uninitialized when the
// load fails. Concurrent first callers share one pipeline run and its outcome.
type Catalog[K Key, E any, X any] struct {
	def      Definition[K, E, X]
	source   Source
	resource string
	logger   *zap.Logger

	ready  atomic.Pointer[Snapshot[X]]
	flight singleflight.Group
	loads  atomic.Int64
}

// New creates an uninitialized catalog. Nothing is read until the first lookup.
func New[K Key, E any, X any](def Definition[K, E, X], source Source, logger *zap.Logger, opts ...Option) *Catalog[K, E, X] {
	o := Options{Resource: def.Resource}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog[K, E, X]{
		def:      def,
		source:   source,
		resource: o.Resource,
		logger:   logger.With(zap.String("catalog", def.Family), zap.String("resource", o.Resource)),
	}
}

// Family returns the catalog family name.
func (c *Catalog[K, E, X]) Family() string {
	return c.def.Family
}

// Resource returns the document name the catalog reads.
func (c *Catalog[K, E, X]) Resource() string {
	return c.resource
}

// Snapshot returns the loaded snapshot, running the pipeline if needed.
func (c *Catalog[K, E, X]) Snapshot() (*Snapshot[X], error) {
	// Fast path: already published.
	if s := c.ready.Load(); s != nil {
		return s, nil
	}

	v, err, _ := c.flight.Do(c.resource, func() (any, error) {
		// Re-check: a flight may have published between the fast path and here.
		if s := c.ready.Load(); s != nil {
			return s, nil
		}
		s, err := c.load()
		if err != nil {
			return nil, err
		}
		c.ready.Store(s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot[X]), nil
}

// Index returns the loaded index, running the pipeline if needed.
func (c *Catalog[K, E, X]) Index() (X, error) {
	s, err := c.Snapshot()
	if err != nil {
		var zero X
		return zero, err
	}
	return s.Index, nil
}

// Warm loads the catalog if it is not loaded yet.
func (c *Catalog[K, E, X]) Warm() error {
	_, err := c.Snapshot()
	return err
}

// Ready reports whether the catalog has been loaded.
func (c *Catalog[K, E, X]) Ready() bool {
	return c.ready.Load() != nil
}

// Loads returns how many times the pipeline has run, successful or not.
func (c *Catalog[K, E, X]) Loads() int64 {
	return c.loads.Load()
}

// Status reports the catalog state without triggering a load.
func (c *Catalog[K, E, X]) Status() Status {
	st := Status{Family: c.def.Family, Resource: c.resource, Loads: c.loads.Load()}
	if s := c.ready.Load(); s != nil {
		st.Ready = true
		st.Warnings = len(s.Warnings)
		st.LoadedAt = s.LoadedAt
	}
	return st
}

// load runs read → validate → map → index once.
func (c *Catalog[K, E, X]) load() (*Snapshot[X], error) {
	c.loads.Add(1)
	started := time.Now()
	c.logger.Debug("Loading catalog")

	data, err := c.source.Read(context.Background(), c.resource)
	if err != nil {
		return nil, c.fail(classifyRead(err), nil)
	}

	doc, err := Decode(c.resource, data)
	if err != nil {
		return nil, c.fail(err, nil)
	}

	chk := NewChecker(c.def.Family, c.logger)
	if err := c.checkVersion(doc, chk); err != nil {
		return nil, c.fail(err, nil)
	}

	records, err := doc.Collection(c.def.Family)
	if err != nil {
		return nil, c.fail(err, nil)
	}

	keys, violations := CheckKeys(c.def.Family, c.def.Keys, records)
	if len(violations) > 0 {
		for _, v := range violations {
			chk.Add(v)
		}
		return nil, c.fail(schemaError(chk), violations)
	}

	byKey := make(map[K]Record, len(keys))
	for i, k := range keys {
		byKey[k] = records[i]
		if c.def.Validate != nil {
			c.def.Validate(chk.Scope(k.String(), records[i]), k)
		}
	}
	if c.def.ValidateAll != nil {
		c.def.ValidateAll(chk, byKey)
	}
	if vs := chk.Violations(); len(vs) > 0 {
		return nil, c.fail(schemaError(chk), vs)
	}

	entities, err := c.mapAll(byKey)
	if err != nil {
		return nil, c.fail(err, nil)
	}

	snap := &Snapshot[X]{
		Index:    c.def.Index(entities),
		Resource: c.resource,
		Warnings: chk.Warnings(),
		LoadedAt: time.Now(),
	}
	c.logger.Info("Catalog loaded",
		zap.Int("records", len(entities)),
		zap.Int("warnings", len(snap.Warnings)),
		zap.Duration("took", time.Since(started)),
	)
	return snap, nil
}

// mapAll maps records in key declaration order. A mapper error or panic is an
// internal defect, since validation has already passed.
func (c *Catalog[K, E, X]) mapAll(records map[K]Record) (entities []E, err error) {
	defer func() {
		if r := recover(); r != nil {
			entities, err = nil, fmt.Errorf("%w: panic: %v", ErrInternalMapping, r)
		}
	}()

	keys := slices.Sorted(maps.Keys(records))
	entities = make([]E, 0, len(keys))
	for _, k := range keys {
		e, err := c.def.Map(k, records[k])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInternalMapping, k.String(), err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (c *Catalog[K, E, X]) checkVersion(doc *Document, chk *Checker) error {
	if c.def.Versions == "" {
		return nil
	}
	if doc.Version == "" {
		chk.Warn(Warning{Field: versionField, Message: fmt.Sprintf("no document version, assuming %s", c.def.Versions)})
		return nil
	}
	v, err := semver.NewVersion(doc.Version)
	if err != nil {
		return fmt.Errorf("%w: %s: version %q: %v", ErrMalformed, doc.Name, doc.Version, err)
	}
	constraint, err := semver.NewConstraint(c.def.Versions)
	if err != nil {
		return fmt.Errorf("%w: %s: version constraint %q: %v", ErrInternalMapping, c.def.Family, c.def.Versions, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s: version %s does not satisfy %s", ErrMalformed, doc.Name, v, c.def.Versions)
	}
	return nil
}

func (c *Catalog[K, E, X]) fail(err error, violations []Violation) error {
	loadErr := &LoadError{Family: c.def.Family, Resource: c.resource, Violations: violations, Err: err}
	c.logger.Error("Catalog load failed", zap.Error(loadErr), zap.Int("violations", len(violations)))
	return loadErr
}

func classifyRead(err error) error {
	if errors.Is(err, ErrResourceNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnreadable, err)
}

func schemaError(chk *Checker) error {
	return fmt.Errorf("%w: %w", ErrSchemaViolation, chk.Err())
}
