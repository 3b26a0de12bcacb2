package archetype

import (
	"slices"

	"github.com/southpawriter02/rune-rust-sub041/feature/rules"
)

// Archetype describes one base character class.
type Archetype struct {
	ID                rules.Archetype       `json:"id"`
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	PrimaryResource   rules.Resource        `json:"primaryResource"`
	StartingAbilities []rules.Ability       `json:"startingAbilities"`
	ResourceBonuses   []rules.ResourceBonus `json:"resourceBonuses"`
	StartingEquipment []Equipment           `json:"startingEquipment"`
}

// Clone returns a deep copy of a.
func (a Archetype) Clone() Archetype {
	a.StartingAbilities = rules.CloneAbilities(a.StartingAbilities)
	a.ResourceBonuses = slices.Clone(a.ResourceBonuses)
	a.StartingEquipment = slices.Clone(a.StartingEquipment)
	return a
}

// Equipment is an item a new character of the archetype starts with.
type Equipment struct {
	Item string `json:"item"`
	Slot Slot   `json:"slot"`
}

// Slot is where a starting item is worn or held.
type Slot int

const (
	None Slot = iota
	MainHand
	OffHand
	Body
	Head
	Trinket
)

// Slots lists every slot.
var Slots = []Slot{None, MainHand, OffHand, Body, Head, Trinket}

func (s Slot) String() string {
	switch s {
	case MainHand:
		return "MainHand"
	case OffHand:
		return "OffHand"
	case Body:
		return "Body"
	case Head:
		return "Head"
	case Trinket:
		return "Trinket"
	default:
		return "None"
	}
}

func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
