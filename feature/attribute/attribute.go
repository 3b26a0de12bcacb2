package attribute

import (
	"regexp"
	"slices"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"go.uber.org/zap"
)

const (
	Family   = "attributes"
	Resource = "attributes.json"
)

// Filter names.
const (
	FilterPhysical = "physical"
	FilterMental   = "mental"
)

// Attribute describes one core attribute.
type Attribute struct {
	ID           rules.Attribute         `json:"id"`
	Name         string                  `json:"name"`
	Abbreviation string                  `json:"abbreviation"`
	Description  string                  `json:"description"`
	Category     rules.AttributeCategory `json:"category"`
	Governs      []string                `json:"governs"`
}

// Clone returns a deep copy of a.
func (a Attribute) Clone() Attribute {
	a.Governs = slices.Clone(a.Governs)
	return a
}

var (
	categoryField = catalog.EnumField[rules.AttributeCategory]{Field: "category", Type: "attribute category", Values: rules.AttributeCategories, Policy: catalog.Required}
	abbreviation  = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Definition returns the catalog definition of the attribute family.
func Definition() catalog.Definition[rules.Attribute, Attribute, *Index] {
	return catalog.Definition[rules.Attribute, Attribute, *Index]{
		Family:   Family,
		Resource: Resource,
		Keys:     catalog.KeySpec[rules.Attribute]{Type: "attribute", Field: "id", Values: rules.Attributes},
		Versions: rules.Versions,
		Validate: validate,
		Map:      mapAttribute,
		Index:    buildIndex,
	}
}

func validate(s *catalog.Scope, k rules.Attribute) {
	s.Text("name")
	if abbr := s.Text("abbreviation"); abbr != "" && !abbreviation.MatchString(abbr) {
		s.Fail(catalog.RuleStructure, "abbreviation", "%q must be three upper-case letters", abbr)
	}
	s.OptionalText("description")
	if c, ok := categoryField.Check(s); ok {
		s.Consistent(categoryField.Field, c, k.Category())
	}
	s.Strings("governs", 1)
}

func mapAttribute(k rules.Attribute, rec catalog.Record) (Attribute, error) {
	category, err := categoryField.Value(rec)
	if err != nil {
		return Attribute{}, err
	}
	a := Attribute{ID: k, Category: category, Governs: rules.TextList(rec, "governs")}
	a.Name, _ = rec.Text("name")
	a.Abbreviation, _ = rec.Text("abbreviation")
	a.Description, _ = rec.Text("description")
	return a, nil
}

// Index holds the attribute lookups.
type Index struct {
	table *catalog.Table[rules.Attribute, rules.AttributeCategory, Attribute]
}

func (x *Index) Table() *catalog.Table[rules.Attribute, rules.AttributeCategory, Attribute] {
	return x.table
}

var tableSpec = catalog.TableSpec[rules.Attribute, rules.AttributeCategory, Attribute]{
	Key:      func(a *Attribute) rules.Attribute { return a.ID },
	Groups:   rules.AttributeCategories,
	GroupsOf: func(a *Attribute) []rules.AttributeCategory { return []rules.AttributeCategory{a.Category} },
	Filters: map[string]func(*Attribute) bool{
		FilterPhysical: func(a *Attribute) bool { return a.Category == rules.Physical },
		FilterMental:   func(a *Attribute) bool { return a.Category == rules.Mental },
	},
	Clone: (*Attribute).Clone,
}

func buildIndex(attrs []Attribute) *Index {
	return &Index{table: catalog.NewTable(tableSpec, attrs)}
}

// Catalog is the read API over the attribute rules.
type Catalog struct {
	*catalog.Reader[rules.Attribute, rules.AttributeCategory, Attribute, *Index]
}

// NewCatalog creates a lazily loaded attribute catalog.
func NewCatalog(source catalog.Source, logger *zap.Logger, opts ...catalog.Option) *Catalog {
	c := catalog.New(Definition(), source, logger, opts...)
	return &Catalog{Reader: catalog.NewReader[rules.Attribute, rules.AttributeCategory](c)}
}

// ByCategory returns the attributes of one category.
func (c *Catalog) ByCategory(cat rules.AttributeCategory) ([]Attribute, error) {
	return c.ByGroup(cat)
}
