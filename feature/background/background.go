package background

import (
	"math"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"go.uber.org/zap"
)

const (
	Family   = "backgrounds"
	Resource = "backgrounds.json"
)

// Filter names.
const (
	FilterSettled  = "settled"
	FilterWanderer = "wanderer"
)

var (
	originField = catalog.EnumField[Origin]{Field: "origin", Type: "origin", Values: Origins, Policy: catalog.Required}
	grantField  = catalog.EnumField[Grant]{Field: "grant", Type: "grant", Values: Grants, Policy: catalog.Required}
)

// Definition returns the catalog definition of the background family.
func Definition() catalog.Definition[Key, Background, *Index] {
	return catalog.Definition[Key, Background, *Index]{
		Family:   Family,
		Resource: Resource,
		Keys:     catalog.KeySpec[Key]{Type: "background", Field: "id", Values: Keys},
		Versions: rules.Versions,
		Validate: validate,
		Map:      mapBackground,
		Index:    buildIndex,
	}
}

func validate(s *catalog.Scope, k Key) {
	s.Text("name")
	s.OptionalText("description")
	if o, ok := originField.Check(s); ok {
		s.Consistent(originField.Field, o, k.Origin())
	}
	for i, g := range s.List("skillGrants", 1) {
		gs := s.Nested(rules.Indexed("skillGrants", i), g)
		gs.Text("skill")
		if grant, ok := grantField.Check(gs); ok && grant == Bonus {
			gs.Integer("amount", 1, math.MaxInt32)
		}
	}
	s.OptionalStrings("startingItems")
}

func mapBackground(k Key, rec catalog.Record) (Background, error) {
	origin, err := originField.Value(rec)
	if err != nil {
		return Background{}, err
	}
	b := Background{ID: k, Origin: origin, StartingItems: rules.TextList(rec, "startingItems")}
	b.Name, _ = rec.Text("name")
	b.Description, _ = rec.Text("description")

	grants, _ := rec.List("skillGrants")
	b.SkillGrants = make([]SkillGrant, 0, len(grants))
	for _, g := range grants {
		grant, err := grantField.Value(g)
		if err != nil {
			return Background{}, err
		}
		sg := SkillGrant{Grant: grant}
		sg.Skill, _ = g.Text("skill")
		if grant == Bonus {
			sg.Amount, _ = g.Integer("amount")
		}
		b.SkillGrants = append(b.SkillGrants, sg)
	}
	return b, nil
}

// Index holds the background lookups.
type Index struct {
	table *catalog.Table[Key, Origin, Background]
}

func (x *Index) Table() *catalog.Table[Key, Origin, Background] {
	return x.table
}

var tableSpec = catalog.TableSpec[Key, Origin, Background]{
	Key:      func(b *Background) Key { return b.ID },
	Groups:   Origins,
	GroupsOf: func(b *Background) []Origin { return []Origin{b.Origin} },
	Filters: map[string]func(*Background) bool{
		FilterSettled:  func(b *Background) bool { return b.Origin == Settled },
		FilterWanderer: func(b *Background) bool { return b.Origin == Wanderer },
	},
	Clone: (*Background).Clone,
}

func buildIndex(backgrounds []Background) *Index {
	return &Index{table: catalog.NewTable(tableSpec, backgrounds)}
}

// Catalog is the read API over the background rules.
type Catalog struct {
	*catalog.Reader[Key, Origin, Background, *Index]
}

// NewCatalog creates a lazily loaded background catalog.
func NewCatalog(source catalog.Source, logger *zap.Logger, opts ...catalog.Option) *Catalog {
	c := catalog.New(Definition(), source, logger, opts...)
	return &Catalog{Reader: catalog.NewReader[Key, Origin](c)}
}

// ByOrigin returns the backgrounds of one origin.
func (c *Catalog) ByOrigin(o Origin) ([]Background, error) {
	return c.ByGroup(o)
}

// FindSkillGrant returns the first background, in key order, granting skill.
func (c *Catalog) FindSkillGrant(skill string) (Background, SkillGrant, bool, error) {
	idx, err := c.Index()
	if err != nil {
		return Background{}, SkillGrant{}, false, err
	}
	skill = strings.TrimSpace(skill)
	b, ok := idx.table.Find(func(b *Background) bool {
		_, found := b.grant(skill)
		return found
	})
	if !ok {
		return Background{}, SkillGrant{}, false, nil
	}
	g, _ := b.grant(skill)
	return b, g, true, nil
}
