package rules

import (
	"math"
	"slices"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
)

// Field declarations shared by several families.
var (
	ArchetypeField   = catalog.EnumField[Archetype]{Field: "archetype", Type: "archetype", Values: Archetypes, Policy: catalog.Required}
	AbilityTypeField = catalog.EnumField[AbilityType]{Field: "type", Type: "ability type", Values: AbilityTypes, Policy: catalog.Required}
	ResourceField    = catalog.EnumField[Resource]{Field: "resource", Type: "resource", Values: Resources, Policy: catalog.Required}
)

// Cost is what an ability spends when used.
type Cost struct {
	Resource Resource `json:"resource"`
	Amount   int      `json:"amount"`
}

// Ability is a usable or always-on power granted by an archetype or specialization.
type Ability struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        AbilityType `json:"type"`
	Cost        *Cost       `json:"cost,omitempty"`
	Cooldown    int         `json:"cooldown"`
	Tags        []string    `json:"tags"`
}

// Clone returns a copy of a sharing no memory with it.
func (a Ability) Clone() Ability {
	if a.Cost != nil {
		cost := *a.Cost
		a.Cost = &cost
	}
	a.Tags = slices.Clone(a.Tags)
	return a
}

// CloneAbilities deep-copies a list of abilities, keeping nil as nil.
func CloneAbilities(list []Ability) []Ability {
	if list == nil {
		return nil
	}
	out := make([]Ability, len(list))
	for i, a := range list {
		out[i] = a.Clone()
	}
	return out
}

// FindAbility returns the ability in list whose id matches id, ignoring case
// and surrounding space.
func FindAbility(list []Ability, id string) (Ability, bool) {
	id = strings.TrimSpace(id)
	for _, a := range list {
		if strings.EqualFold(a.ID, id) {
			return a, true
		}
	}
	return Ability{}, false
}

// ResourceBonus adjusts the maximum of a resource pool.
type ResourceBonus struct {
	Resource Resource `json:"resource"`
	Amount   int      `json:"amount"`
}

// CheckAbility validates one ability object.
func CheckAbility(s *catalog.Scope) {
	s.Text("id")
	s.Text("name")
	s.OptionalText("description")
	AbilityTypeField.Check(s)
	if cost, ok := s.OptionalObject("cost"); ok {
		cs := s.Nested("cost", cost)
		ResourceField.Check(cs)
		cs.Integer("amount", 0, math.MaxInt32)
	}
	s.OptionalInteger("cooldown", 0, 0, math.MaxInt32)
	s.OptionalStrings("tags")
}

// MapAbility converts a validated ability object.
func MapAbility(rec catalog.Record) (Ability, error) {
	typ, err := AbilityTypeField.Value(rec)
	if err != nil {
		return Ability{}, err
	}
	a := Ability{Type: typ}
	a.ID, _ = rec.Text("id")
	a.Name, _ = rec.Text("name")
	a.Description, _ = rec.Text("description")
	a.Cooldown, _ = rec.Integer("cooldown")
	a.Tags = TextList(rec, "tags")
	if cost, ok := rec.Object("cost"); ok {
		res, err := ResourceField.Value(cost)
		if err != nil {
			return Ability{}, err
		}
		amount, _ := cost.Integer("amount")
		a.Cost = &Cost{Resource: res, Amount: amount}
	}
	return a, nil
}

// CheckResourceBonuses validates the optional resourceBonuses list.
func CheckResourceBonuses(s *catalog.Scope) {
	for i, b := range s.OptionalList("resourceBonuses") {
		bs := s.Nested(Indexed("resourceBonuses", i), b)
		ResourceField.Check(bs)
		bs.Integer("amount", math.MinInt32, math.MaxInt32)
		if v, ok := b.Integer("amount"); ok && v == 0 {
			bs.Fail(catalog.RuleStructure, "amount", "must not be zero")
		}
	}
}

// MapResourceBonuses converts the resourceBonuses list, never returning nil.
func MapResourceBonuses(rec catalog.Record) ([]ResourceBonus, error) {
	items, _ := rec.List("resourceBonuses")
	out := make([]ResourceBonus, 0, len(items))
	for _, b := range items {
		res, err := ResourceField.Value(b)
		if err != nil {
			return nil, err
		}
		amount, _ := b.Integer("amount")
		out = append(out, ResourceBonus{Resource: res, Amount: amount})
	}
	return out, nil
}
