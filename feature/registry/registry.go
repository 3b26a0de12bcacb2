package registry

import (
	"fmt"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/core/loader"
	"github.com/southpawriter02/rune-rust-sub041/feature/archetype"
	"github.com/southpawriter02/rune-rust-sub041/feature/attribute"
	"github.com/southpawriter02/rune-rust-sub041/feature/background"
	"github.com/southpawriter02/rune-rust-sub041/feature/lineage"
	"github.com/southpawriter02/rune-rust-sub041/feature/realm"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"
	"github.com/southpawriter02/rune-rust-sub041/feature/specialization"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Resources lists the default document of every family, in registry order.
var Resources = []string{
	attribute.Resource,
	archetype.Resource,
	background.Resource,
	lineage.Resource,
	specialization.Resource,
	realm.Resource,
}

// Registry holds one catalog per rules family, all reading from the same source.
type Registry struct {
	Attributes      *attribute.Catalog
	Archetypes      *archetype.Catalog
	Backgrounds     *background.Catalog
	Lineages        *lineage.Catalog
	Specializations *specialization.Catalog
	Realms          *realm.Catalog

	logger  *zap.Logger
	loaders []catalog.Loader
	finders map[string]finder
}

// finder resolves an id string to one entity of a family.
type finder func(id string) (any, bool, error)

// New creates every catalog over src. Nothing is read until first use.
func New(src catalog.Source, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		Attributes:      attribute.NewCatalog(src, logger),
		Archetypes:      archetype.NewCatalog(src, logger),
		Backgrounds:     background.NewCatalog(src, logger),
		Lineages:        lineage.NewCatalog(src, logger),
		Specializations: specialization.NewCatalog(src, logger),
		Realms:          realm.NewCatalog(src, logger),
		logger:          logger,
	}
	r.loaders = []catalog.Loader{r.Attributes, r.Archetypes, r.Backgrounds, r.Lineages, r.Specializations, r.Realms}
	r.finders = map[string]finder{
		attribute.Family:      find(rules.ParseAttribute, r.Attributes.Get),
		archetype.Family:      find(rules.ParseArchetype, r.Archetypes.Get),
		background.Family:     find(background.ParseKey, r.Backgrounds.Get),
		lineage.Family:        find(lineage.ParseKey, r.Lineages.Get),
		specialization.Family: find(specialization.ParseKey, r.Specializations.Get),
		realm.Family:          find(realm.ParseKey, r.Realms.Get),
	}
	return r
}

func find[K any, E any](parse func(string) (K, error), get func(K) (E, bool, error)) finder {
	return func(id string) (any, bool, error) {
		k, err := parse(id)
		if err != nil {
			return nil, false, err
		}
		e, ok, err := get(k)
		if err != nil || !ok {
			return nil, ok, err
		}
		return e, true, nil
	}
}

// Families lists the family names in registry order.
func (r *Registry) Families() []string {
	out := make([]string, len(r.loaders))
	for i, l := range r.loaders {
		out[i] = l.Family()
	}
	return out
}

// Loaders returns the family-independent view of every catalog.
func (r *Registry) Loaders() []catalog.Loader {
	return r.loaders
}

// Loader returns the catalog of one family.
func (r *Registry) Loader(family string) (catalog.Loader, bool) {
	for _, l := range r.loaders {
		if strings.EqualFold(l.Family(), family) {
			return l, true
		}
	}
	return nil, false
}

// Find resolves id within family. An unknown family or an id outside the
// family's key universe is returned as an error.
func (r *Registry) Find(family, id string) (any, bool, error) {
	f, ok := r.finders[strings.ToLower(strings.TrimSpace(family))]
	if !ok {
		return nil, false, fmt.Errorf("unknown rules family %q (valid: %s)", family, strings.Join(r.Families(), ", "))
	}
	return f(id)
}

// Warm loads every catalog concurrently and reports every failure, not just
// the first one.
func (r *Registry) Warm() error {
	errs := make([]error, len(r.loaders))
	var g errgroup.Group
	for i, l := range r.loaders {
		g.Go(func() error {
			errs[i] = l.Warm()
			return nil
		})
	}
	_ = g.Wait()

	err := multierr.Combine(errs...)
	if err != nil {
		r.logger.Error("Catalog warm-up failed", zap.Int("failed", len(multierr.Errors(err))))
		return err
	}
	r.logger.Info("Catalogs warmed", zap.Int("families", len(r.loaders)))
	return nil
}

// Statuses reports every catalog without triggering loads.
func (r *Registry) Statuses() []catalog.Status {
	out := make([]catalog.Status, len(r.loaders))
	for i, l := range r.loaders {
		out[i] = l.Status()
	}
	return out
}

// Features returns the HTTP feature of every family.
func (r *Registry) Features(logger *zap.Logger) []loader.Feature {
	return []loader.Feature{
		attribute.NewFeature(r.Attributes, logger),
		archetype.NewFeature(r.Archetypes, logger),
		background.NewFeature(r.Backgrounds, logger),
		lineage.NewFeature(r.Lineages, logger),
		specialization.NewFeature(r.Specializations, logger),
		realm.NewFeature(r.Realms, logger),
	}
}
