package specialization

import (
	"fmt"
	"math"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"
)

const (
	// Family is the catalog family and top-level array name.
	Family = "specializations"
	// Resource is the default rules document.
	Resource = "specializations.json"
)

var (
	archetypeField = rules.ArchetypeField
	pathField      = catalog.EnumField[Path]{Field: "pathType", Type: "path type", Values: Paths, Policy: catalog.Required}
	roleField      = catalog.EnumField[Role]{Field: "role", Type: "role", Values: Roles, Policy: catalog.Optional, Default: Unspecified}
	primaryField   = catalog.EnumField[rules.Attribute]{Field: "primaryAttribute", Type: "attribute", Values: rules.Attributes, Policy: catalog.Required}
	secondaryField = catalog.EnumField[rules.Attribute]{Field: "secondaryAttribute", Type: "attribute", Values: rules.Attributes, Policy: catalog.Required}
	specialField   = catalog.EnumField[rules.Resource]{Field: "type", Type: "resource", Values: rules.Resources, Policy: catalog.Required}
)

// Definition returns the catalog definition of the specialization family.
func Definition() catalog.Definition[Key, Specialization, *Index] {
	return catalog.Definition[Key, Specialization, *Index]{
		Family:      Family,
		Resource:    Resource,
		Keys:        catalog.KeySpec[Key]{Type: "specialization", Field: "id", Values: Keys},
		Versions:    rules.Versions,
		Validate:    validate,
		ValidateAll: validateAbilityIDs,
		Map:         mapSpecialization,
		Index:       buildIndex,
	}
}

func validate(s *catalog.Scope, k Key) {
	s.Text("name")
	s.OptionalText("tagline")
	s.OptionalText("description")

	if a, ok := archetypeField.Check(s); ok {
		s.Consistent(archetypeField.Field, a, k.Archetype())
	}
	if p, ok := pathField.Check(s); ok {
		s.Consistent(pathField.Field, p, k.Path())
	}
	roleField.Check(s)

	primary, okP := primaryField.Check(s)
	secondary, okS := secondaryField.Check(s)
	if okP && okS && primary == secondary {
		s.Fail(catalog.RuleConsistency, secondaryField.Field, "must differ from primaryAttribute (both %s)", primary)
	}

	s.Integer("unlockCost", 0, math.MaxInt32)

	if res, ok := s.OptionalObject("specialResource"); ok {
		rs := s.Nested("specialResource", res)
		specialField.Check(rs)
		rs.OptionalText("name")
		limit := rs.Integer("max", 1, math.MaxInt32)
		if limit > 0 {
			rs.OptionalInteger("start", 0, 0, limit)
		}
	}

	for i, tier := range s.List("tiers", 1) {
		ts := s.Nested(rules.Indexed("tiers", i), tier)
		switch n, ok := tier.Integer("tier"); {
		case !tier.Has("tier"):
			ts.Fail(catalog.RuleStructure, "tier", "required field is missing")
		case !ok:
			ts.Fail(catalog.RuleStructure, "tier", "must be an integer")
		case n != i+1:
			ts.Fail(catalog.RuleStructure, "tier", "tiers must be numbered 1..n in order: expected %d, found %d", i+1, n)
		}
		ts.OptionalInteger("ppCost", 0, 0, math.MaxInt32)
		for j, ability := range ts.List("abilities", 1) {
			rules.CheckAbility(ts.Nested(rules.Indexed("abilities", j), ability))
		}
	}

	rules.CheckResourceBonuses(s)
}

// validateAbilityIDs enforces that ability ids are unique across the catalog.
func validateAbilityIDs(c *catalog.Checker, records map[Key]catalog.Record) {
	owners := make(map[string]string)
	for _, k := range Keys {
		rec, ok := records[k]
		if !ok {
			continue
		}
		tiers, _ := rec.List("tiers")
		for i, tier := range tiers {
			abilities, _ := tier.List("abilities")
			for j, ability := range abilities {
				id, ok := ability.Text("id")
				if !ok || id == "" {
					continue
				}
				folded := catalogID(id)
				if owner, dup := owners[folded]; dup {
					c.Add(catalog.Violation{
						Rule:    catalog.RuleUniqueness,
						Record:  k.String(),
						Field:   fmt.Sprintf("tiers[%d].abilities[%d].id", i, j),
						Message: fmt.Sprintf("ability id %q already used by %s", id, owner),
					})
					continue
				}
				owners[folded] = k.String()
			}
		}
	}
}

func mapSpecialization(k Key, rec catalog.Record) (Specialization, error) {
	archetype, err := archetypeField.Value(rec)
	if err != nil {
		return Specialization{}, err
	}
	path, err := pathField.Value(rec)
	if err != nil {
		return Specialization{}, err
	}
	role, _ := roleField.Value(rec)
	primary, err := primaryField.Value(rec)
	if err != nil {
		return Specialization{}, err
	}
	secondary, err := secondaryField.Value(rec)
	if err != nil {
		return Specialization{}, err
	}

	spec := Specialization{
		ID:                 k,
		Archetype:          archetype,
		Path:               path,
		Role:               role,
		PrimaryAttribute:   primary,
		SecondaryAttribute: secondary,
	}
	spec.Name, _ = rec.Text("name")
	spec.Tagline, _ = rec.Text("tagline")
	spec.Description, _ = rec.Text("description")
	spec.UnlockCost, _ = rec.Integer("unlockCost")

	if res, ok := rec.Object("specialResource"); ok {
		typ, err := specialField.Value(res)
		if err != nil {
			return Specialization{}, err
		}
		sr := SpecialResource{Type: typ}
		sr.Name, _ = res.Text("name")
		sr.Max, _ = res.Integer("max")
		sr.Start, _ = res.Integer("start")
		spec.SpecialResource = &sr
	}

	tiers, _ := rec.List("tiers")
	spec.Tiers = make([]Tier, 0, len(tiers))
	for _, t := range tiers {
		tier := Tier{}
		tier.Tier, _ = t.Integer("tier")
		tier.PPCost, _ = t.Integer("ppCost")
		abilities, _ := t.List("abilities")
		tier.Abilities = make([]rules.Ability, 0, len(abilities))
		for _, a := range abilities {
			ability, err := rules.MapAbility(a)
			if err != nil {
				return Specialization{}, err
			}
			tier.Abilities = append(tier.Abilities, ability)
		}
		spec.Tiers = append(spec.Tiers, tier)
	}

	if spec.ResourceBonuses, err = rules.MapResourceBonuses(rec); err != nil {
		return Specialization{}, err
	}
	return spec, nil
}

// Index holds every lookup structure of the specialization catalog.
type Index struct {
	table *catalog.Table[Key, rules.Archetype, Specialization]
}

// Table returns the shared table part of the index.
func (x *Index) Table() *catalog.Table[Key, rules.Archetype, Specialization] {
	return x.table
}

// Filter names.
const (
	FilterHeretical       = "heretical"
	FilterCoherent        = "coherent"
	FilterSpecialResource = "special-resource"
)

var tableSpec = catalog.TableSpec[Key, rules.Archetype, Specialization]{
	Key:      func(s *Specialization) Key { return s.ID },
	Groups:   rules.Archetypes,
	GroupsOf: func(s *Specialization) []rules.Archetype { return []rules.Archetype{s.Archetype} },
	Filters: map[string]func(*Specialization) bool{
		FilterHeretical:       func(s *Specialization) bool { return s.Path == Heretical },
		FilterCoherent:        func(s *Specialization) bool { return s.Path == Coherent },
		FilterSpecialResource: func(s *Specialization) bool { return s.SpecialResource != nil },
	},
	Clone: (*Specialization).Clone,
}

func buildIndex(specs []Specialization) *Index {
	return &Index{table: catalog.NewTable(tableSpec, specs)}
}

// catalogID folds an ability id for the uniqueness check.
func catalogID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
