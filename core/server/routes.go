package server

import (
	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Routes serves the common read API of one catalog family:
//
//	GET /              every entity
//	GET /<group>/:key  entities of one group
//	GET /filter/:name  entities matching a named filter
//	GET /:id           one entity
type Routes[K catalog.Key, G catalog.Key, E any, X catalog.Tabled[K, G, E]] struct {
	// Entity names the record type in 404 bodies (e.g. "realm").
	Entity string
	// Group is the path segment of the group route (e.g. "biome").
	Group string
	// ParseKey and ParseGroup resolve path parameters.
	ParseKey   func(string) (K, error)
	ParseGroup func(string) (G, error)
	Reader     *catalog.Reader[K, G, E, X]
	Logger     *zap.Logger
}

// Register adds the list, group and filter routes to r.
func (rt Routes[K, G, E, X]) Register(r fiber.Router) {
	r.Get("/", rt.handleList)
	if rt.ParseGroup != nil {
		r.Get("/"+rt.Group+"/:group", rt.handleGroup)
	}
	r.Get("/filter/:name", rt.handleFilter)
}

// RegisterGet adds the single-entity route. It matches any segment, so it
// goes after every other route of the family.
func (rt Routes[K, G, E, X]) RegisterGet(r fiber.Router) {
	r.Get("/:id", rt.handleGet)
}

// Fail logs err with the request's ray id and writes the error response.
func (rt Routes[K, G, E, X]) Fail(c *fiber.Ctx, err error) error {
	if rt.Logger != nil {
		logger.WithRayID(rt.Logger, c).Error("Catalog request failed",
			zap.String("family", rt.Reader.Family()),
			zap.Error(err),
		)
	}
	return Error(c, err)
}

func (rt Routes[K, G, E, X]) handleList(c *fiber.Ctx) error {
	all, err := rt.Reader.All()
	if err != nil {
		return rt.Fail(c, err)
	}
	return c.JSON(all)
}

func (rt Routes[K, G, E, X]) handleGet(c *fiber.Ctx) error {
	id := c.Params("id")
	key, err := rt.ParseKey(id)
	if err != nil {
		return NotFound(c, rt.Entity, id)
	}
	e, ok, err := rt.Reader.Get(key)
	if err != nil {
		return rt.Fail(c, err)
	}
	if !ok {
		return NotFound(c, rt.Entity, id)
	}
	return c.JSON(e)
}

func (rt Routes[K, G, E, X]) handleGroup(c *fiber.Ctx) error {
	g, err := rt.ParseGroup(c.Params("group"))
	if err != nil {
		return Error(c, err)
	}
	list, err := rt.Reader.ByGroup(g)
	if err != nil {
		return rt.Fail(c, err)
	}
	return c.JSON(list)
}

func (rt Routes[K, G, E, X]) handleFilter(c *fiber.Ctx) error {
	list, err := rt.Reader.Filter(c.Params("name"))
	if err != nil {
		return rt.Fail(c, err)
	}
	return c.JSON(list)
}
