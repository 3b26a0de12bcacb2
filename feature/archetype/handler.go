package archetype

import (
	"github.com/southpawriter02/rune-rust-sub041/core/server"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature serves the archetype catalog under /catalogs/archetypes.
type Feature struct {
	catalog *Catalog
	routes  server.Routes[rules.Archetype, rules.Resource, Archetype, *Index]
}

// NewFeature creates the archetype HTTP feature.
func NewFeature(c *Catalog, logger *zap.Logger) *Feature {
	return &Feature{
		catalog: c,
		routes: server.Routes[rules.Archetype, rules.Resource, Archetype, *Index]{
			Entity:     "archetype",
			Group:      "resource",
			ParseKey:   rules.ParseArchetype,
			ParseGroup: rules.ParseResource,
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
	group.Get("/abilities/:id", f.handleFindAbility)
	f.routes.RegisterGet(group)
	return nil
}

func (f *Feature) handleFindAbility(c *fiber.Ctx) error {
	id := c.Params("id")
	owner, ability, ok, err := f.catalog.FindStartingAbility(id)
	if err != nil {
		return f.routes.Fail(c, err)
	}
	if !ok {
		return server.NotFound(c, "starting ability", id)
	}
	return c.JSON(fiber.Map{"archetype": owner.ID, "ability": ability})
}
