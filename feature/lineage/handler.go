package lineage

import (
	"github.com/southpawriter02/rune-rust-sub041/core/server"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature serves the lineage catalog under /catalogs/lineages.
type Feature struct {
	catalog *Catalog
	routes  server.Routes[Key, rules.Attribute, Lineage, *Index]
}

// NewFeature creates the lineage HTTP feature.
func NewFeature(c *Catalog, logger *zap.Logger) *Feature {
	return &Feature{
		catalog: c,
		routes: server.Routes[Key, rules.Attribute, Lineage, *Index]{
			Entity:     "lineage",
			Group:      "attribute",
			ParseKey:   ParseKey,
			ParseGroup: rules.ParseAttribute,
			Reader:     c.Reader,
			Logger:     logger,
		},
	}
}

func (f *Feature) Name() string {
	return Family
}

func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	group := app.Group("/catalogs/" + Family)
	f.routes.Register(group)
	group.Get("/traits/:id", f.handleFindTrait)
	f.routes.RegisterGet(group)
	return nil
}

func (f *Feature) handleFindTrait(c *fiber.Ctx) error {
	id := c.Params("id")
	owner, trait, ok, err := f.catalog.FindTrait(id)
	if err != nil {
		return f.routes.Fail(c, err)
	}
	if !ok {
		return server.NotFound(c, "trait", id)
	}
	return c.JSON(fiber.Map{"lineage": owner.ID, "trait": trait})
}
