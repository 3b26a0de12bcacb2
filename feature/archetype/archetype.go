package archetype

import (
	"fmt"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"go.uber.org/zap"
)

const (
	Family   = "archetypes"
	Resource = "archetypes.json"
)

// Filter names.
const (
	FilterCasters = "casters"
	FilterMartial = "martial"
)

// StartingAbilityCount is how many abilities every archetype starts with.
const StartingAbilityCount = 3

var (
	primaryResourceField = catalog.EnumField[rules.Resource]{Field: "primaryResource", Type: "resource", Values: rules.Resources, Policy: catalog.Required}
	slotField            = catalog.EnumField[Slot]{Field: "slot", Type: "equipment slot", Values: Slots, Policy: catalog.Optional, Default: None}
)

// Definition returns the catalog definition of the archetype family.
func Definition() catalog.Definition[rules.Archetype, Archetype, *Index] {
	return catalog.Definition[rules.Archetype, Archetype, *Index]{
		Family:      Family,
		Resource:    Resource,
		Keys:        catalog.KeySpec[rules.Archetype]{Type: "archetype", Field: "id", Values: rules.Archetypes},
		Versions:    rules.Versions,
		Validate:    validate,
		ValidateAll: validateAbilityIDs,
		Map:         mapArchetype,
		Index:       buildIndex,
	}
}

func validate(s *catalog.Scope, k rules.Archetype) {
	s.Text("name")
	s.OptionalText("description")
	if r, ok := primaryResourceField.Check(s); ok {
		s.Consistent(primaryResourceField.Field, r, k.PrimaryResource())
	}
	for i, a := range s.ExactList("startingAbilities", StartingAbilityCount) {
		rules.CheckAbility(s.Nested(rules.Indexed("startingAbilities", i), a))
	}
	rules.CheckResourceBonuses(s)
	for i, e := range s.OptionalList("startingEquipment") {
		es := s.Nested(rules.Indexed("startingEquipment", i), e)
		es.Text("item")
		slotField.Check(es)
	}
}

func validateAbilityIDs(c *catalog.Checker, records map[rules.Archetype]catalog.Record) {
	owners := make(map[string]string)
	for _, k := range rules.Archetypes {
		abilities, _ := records[k].List("startingAbilities")
		for i, a := range abilities {
			id, ok := a.Text("id")
			if !ok || id == "" {
				continue
			}
			folded := strings.ToLower(id)
			if owner, dup := owners[folded]; dup {
				c.Add(catalog.Violation{
					Rule:    catalog.RuleUniqueness,
					Record:  k.String(),
					Field:   fmt.Sprintf("startingAbilities[%d].id", i),
					Message: fmt.Sprintf("ability id %q already used by %s", id, owner),
				})
				continue
			}
			owners[folded] = k.String()
		}
	}
}

func mapArchetype(k rules.Archetype, rec catalog.Record) (Archetype, error) {
	res, err := primaryResourceField.Value(rec)
	if err != nil {
		return Archetype{}, err
	}
	a := Archetype{ID: k, PrimaryResource: res}
	a.Name, _ = rec.Text("name")
	a.Description, _ = rec.Text("description")

	abilities, _ := rec.List("startingAbilities")
	a.StartingAbilities = make([]rules.Ability, 0, len(abilities))
	for _, r := range abilities {
		ability, err := rules.MapAbility(r)
		if err != nil {
			return Archetype{}, err
		}
		a.StartingAbilities = append(a.StartingAbilities, ability)
	}

	if a.ResourceBonuses, err = rules.MapResourceBonuses(rec); err != nil {
		return Archetype{}, err
	}

	items, _ := rec.List("startingEquipment")
	a.StartingEquipment = make([]Equipment, 0, len(items))
	for _, r := range items {
		slot, _ := slotField.Value(r)
		item, _ := r.Text("item")
		a.StartingEquipment = append(a.StartingEquipment, Equipment{Item: item, Slot: slot})
	}
	return a, nil
}

// Index holds the archetype lookups.
type Index struct {
	table *catalog.Table[rules.Archetype, rules.Resource, Archetype]
}

func (x *Index) Table() *catalog.Table[rules.Archetype, rules.Resource, Archetype] {
	return x.table
}

var tableSpec = catalog.TableSpec[rules.Archetype, rules.Resource, Archetype]{
	Key:      func(a *Archetype) rules.Archetype { return a.ID },
	Groups:   rules.Resources,
	GroupsOf: func(a *Archetype) []rules.Resource { return []rules.Resource{a.PrimaryResource} },
	Filters: map[string]func(*Archetype) bool{
		FilterCasters: func(a *Archetype) bool { return a.PrimaryResource == rules.Aether },
		FilterMartial: func(a *Archetype) bool { return a.PrimaryResource != rules.Aether },
	},
	Clone: (*Archetype).Clone,
}

func buildIndex(archetypes []Archetype) *Index {
	return &Index{table: catalog.NewTable(tableSpec, archetypes)}
}

// Catalog is the read API over the archetype rules.
type Catalog struct {
	*catalog.Reader[rules.Archetype, rules.Resource, Archetype, *Index]
}

// NewCatalog creates a lazily loaded archetype catalog.
func NewCatalog(source catalog.Source, logger *zap.Logger, opts ...catalog.Option) *Catalog {
	c := catalog.New(Definition(), source, logger, opts...)
	return &Catalog{Reader: catalog.NewReader[rules.Archetype, rules.Resource](c)}
}

// ByPrimaryResource returns the archetypes spending r.
func (c *Catalog) ByPrimaryResource(r rules.Resource) ([]Archetype, error) {
	return c.ByGroup(r)
}

// FindStartingAbility resolves a starting ability id to its archetype.
func (c *Catalog) FindStartingAbility(id string) (Archetype, rules.Ability, bool, error) {
	idx, err := c.Index()
	if err != nil {
		return Archetype{}, rules.Ability{}, false, err
	}
	a, ok := idx.table.Find(func(a *Archetype) bool {
		_, found := rules.FindAbility(a.StartingAbilities, id)
		return found
	})
	if !ok {
		return Archetype{}, rules.Ability{}, false, nil
	}
	ability, _ := rules.FindAbility(a.StartingAbilities, id)
	return a, ability, true, nil
}
