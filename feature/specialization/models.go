package specialization

import (
	"slices"

	"github.com/southpawriter02/rune-rust-sub041/feature/rules"
)

// Specialization is an advanced path a character of one archetype can unlock.
type Specialization struct {
	ID                 Key                   `json:"id"`
	Name               string                `json:"name"`
	Tagline            string                `json:"tagline"`
	Description        string                `json:"description"`
	Archetype          rules.Archetype       `json:"archetype"`
	Path               Path                  `json:"pathType"`
	Role               Role                  `json:"role"`
	PrimaryAttribute   rules.Attribute       `json:"primaryAttribute"`
	SecondaryAttribute rules.Attribute       `json:"secondaryAttribute"`
	UnlockCost         int                   `json:"unlockCost"`
	SpecialResource    *SpecialResource      `json:"specialResource,omitempty"`
	Tiers              []Tier                `json:"tiers"`
	ResourceBonuses    []rules.ResourceBonus `json:"resourceBonuses"`
}

// Heretical reports whether the specialization follows the heretical path.
func (s Specialization) Heretical() bool {
	return s.Path == Heretical
}

// Abilities returns every ability across all tiers, lowest tier first.
func (s Specialization) Abilities() []rules.Ability {
	var out []rules.Ability
	for _, t := range s.Tiers {
		out = append(out, t.Abilities...)
	}
	if out == nil {
		return []rules.Ability{}
	}
	return out
}

// Clone returns a deep copy of s.
func (s Specialization) Clone() Specialization {
	if s.SpecialResource != nil {
		sr := *s.SpecialResource
		s.SpecialResource = &sr
	}
	if s.Tiers != nil {
		tiers := make([]Tier, len(s.Tiers))
		for i, t := range s.Tiers {
			t.Abilities = rules.CloneAbilities(t.Abilities)
			tiers[i] = t
		}
		s.Tiers = tiers
	}
	s.ResourceBonuses = slices.Clone(s.ResourceBonuses)
	return s
}

func (s *Specialization) ability(id string) (rules.Ability, bool) {
	for _, t := range s.Tiers {
		if a, ok := rules.FindAbility(t.Abilities, id); ok {
			return a, true
		}
	}
	return rules.Ability{}, false
}

// SpecialResource is a pool unique to the specialization, such as Rage.
type SpecialResource struct {
	Type  rules.Resource `json:"type"`
	Name  string         `json:"name"`
	Max   int            `json:"max"`
	Start int            `json:"start"`
}

// Tier is one rank of a specialization's ability tree.
type Tier struct {
	Tier      int             `json:"tier"`
	PPCost    int             `json:"ppCost"`
	Abilities []rules.Ability `json:"abilities"`
}
