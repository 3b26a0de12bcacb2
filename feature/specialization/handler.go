package specialization

import (
	"github.com/southpawriter02/rune-rust-sub041/core/server"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the specialization catalog over HTTP.
type Handler struct {
	catalog *Catalog
	routes  server.Routes[Key, rules.Archetype, Specialization, *Index]
}

// NewHandler creates a new HTTP handler.
func NewHandler(c *Catalog, logger *zap.Logger) *Handler {
	return &Handler{
		catalog: c,
		routes: server.Routes[Key, rules.Archetype, Specialization, *Index]{
			Entity:     "specialization",
			Group:      "archetype",
			ParseKey:   ParseKey,
			ParseGroup: rules.ParseArchetype,
			Reader:     c.Reader,
			Logger:     logger,
		},
	}
}

// RegisterRoutes registers the specialization routes under /catalogs/specializations.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalogs/" + Family)
	h.routes.Register(group)
	group.Get("/abilities/:id", h.HandleFindAbility)
	h.routes.RegisterGet(group)
}

// HandleFindAbility returns an ability and the specialization that grants it.
func (h *Handler) HandleFindAbility(c *fiber.Ctx) error {
	id := c.Params("id")
	spec, ability, ok, err := h.catalog.FindAbility(id)
	if err != nil {
		return h.routes.Fail(c, err)
	}
	if !ok {
		return server.NotFound(c, "ability", id)
	}
	return c.JSON(fiber.Map{
		"specialization": spec.ID,
		"tier":           tierOf(spec, ability.ID),
		"ability":        ability,
	})
}

func tierOf(s Specialization, abilityID string) int {
	for _, t := range s.Tiers {
		for _, a := range t.Abilities {
			if a.ID == abilityID {
				return t.Tier
			}
		}
	}
	return 0
}
