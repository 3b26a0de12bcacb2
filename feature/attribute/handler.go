package attribute

import (
	"github.com/southpawriter02/rune-rust-sub041/core/server"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature serves the attribute catalog under /catalogs/attributes.
type Feature struct {
	routes server.Routes[rules.Attribute, rules.AttributeCategory, Attribute, *Index]
}

// NewFeature creates the attribute HTTP feature.
func NewFeature(c *Catalog, logger *zap.Logger) *Feature {
	return &Feature{routes: server.Routes[rules.Attribute, rules.AttributeCategory, Attribute, *Index]{
		Entity:     "attribute",
		Group:      "category",
		ParseKey:   rules.ParseAttribute,
		ParseGroup: rules.ParseAttributeCategory,
		Reader:     c.Reader,
		Logger:     logger,
	}}
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
	f.routes.RegisterGet(group)
	return nil
}
