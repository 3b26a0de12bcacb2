package background

import (
	"github.com/southpawriter02/rune-rust-sub041/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature serves the background catalog under /catalogs/backgrounds.
type Feature struct {
	catalog *Catalog
	routes  server.Routes[Key, Origin, Background, *Index]
}

// NewFeature creates the background HTTP feature.
func NewFeature(c *Catalog, logger *zap.Logger) *Feature {
	return &Feature{
		catalog: c,
		routes: server.Routes[Key, Origin, Background, *Index]{
			Entity:     "background",
			Group:      "origin",
			ParseKey:   ParseKey,
			ParseGroup: ParseOrigin,
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
	group.Get("/skills/:skill", f.handleFindSkill)
	f.routes.RegisterGet(group)
	return nil
}

func (f *Feature) handleFindSkill(c *fiber.Ctx) error {
	skill := c.Params("skill")
	b, grant, ok, err := f.catalog.FindSkillGrant(skill)
	if err != nil {
		return f.routes.Fail(c, err)
	}
	if !ok {
		return server.NotFound(c, "skill grant", skill)
	}
	return c.JSON(fiber.Map{"background": b.ID, "grant": grant})
}
