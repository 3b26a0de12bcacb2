package specialization

import (
	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"go.uber.org/zap"
)

// Catalog is the read API over the specialization rules.
type Catalog struct {
	*catalog.Reader[Key, rules.Archetype, Specialization, *Index]
}

// NewCatalog creates a lazily loaded specialization catalog reading from source.
func NewCatalog(source catalog.Source, logger *zap.Logger, opts ...catalog.Option) *Catalog {
	c := catalog.New(Definition(), source, logger, opts...)
	return &Catalog{Reader: catalog.NewReader[Key, rules.Archetype](c)}
}

// ByArchetype returns the specializations open to an archetype.
func (c *Catalog) ByArchetype(a rules.Archetype) ([]Specialization, error) {
	return c.ByGroup(a)
}

// Heretical returns every heretical specialization.
func (c *Catalog) Heretical() ([]Specialization, error) {
	return c.Filter(FilterHeretical)
}

// Coherent returns every coherent specialization.
func (c *Catalog) Coherent() ([]Specialization, error) {
	return c.Filter(FilterCoherent)
}

// WithSpecialResource returns the specializations that track their own resource.
func (c *Catalog) WithSpecialResource() ([]Specialization, error) {
	return c.Filter(FilterSpecialResource)
}

// FindAbility looks an ability up by id across every tier of every
// specialization. The id is matched case-insensitively.
func (c *Catalog) FindAbility(id string) (Specialization, rules.Ability, bool, error) {
	idx, err := c.Index()
	if err != nil {
		return Specialization{}, rules.Ability{}, false, err
	}
	owner, ok := idx.table.Find(func(s *Specialization) bool {
		_, found := s.ability(id)
		return found
	})
	if !ok {
		return Specialization{}, rules.Ability{}, false, nil
	}
	ability, _ := owner.ability(id)
	return owner, ability, true, nil
}
