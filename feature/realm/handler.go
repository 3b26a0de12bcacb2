package realm

import (
	"github.com/southpawriter02/rune-rust-sub041/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature serves the realm catalog under /catalogs/realms.
type Feature struct {
	catalog *Catalog
	routes  server.Routes[Key, Biome, Realm, *Index]
}

// NewFeature creates the realm HTTP feature.
func NewFeature(c *Catalog, logger *zap.Logger) *Feature {
	return &Feature{
		catalog: c,
		routes: server.Routes[Key, Biome, Realm, *Index]{
			Entity:     "realm",
			Group:      "biome",
			ParseKey:   ParseKey,
			ParseGroup: ParseBiome,
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
	group.Get("/hazards/:id", f.handleFindHazard)
	group.Get("/:id/neighbors", f.handleNeighbors)
	f.routes.RegisterGet(group)
	return nil
}

func (f *Feature) handleNeighbors(c *fiber.Ctx) error {
	id := c.Params("id")
	k, err := ParseKey(id)
	if err != nil {
		return server.NotFound(c, "realm", id)
	}
	neighbors, err := f.catalog.Neighbors(k)
	if err != nil {
		return f.routes.Fail(c, err)
	}
	return c.JSON(neighbors)
}

func (f *Feature) handleFindHazard(c *fiber.Ctx) error {
	id := c.Params("id")
	owner, hazard, ok, err := f.catalog.FindHazard(id)
	if err != nil {
		return f.routes.Fail(c, err)
	}
	if !ok {
		return server.NotFound(c, "hazard", id)
	}
	return c.JSON(fiber.Map{"realm": owner.ID, "hazard": hazard})
}
