package rules

import (
	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
)

// Archetype is one of the four base character classes.
type Archetype int

const (
	Warrior Archetype = iota
	Skirmisher
	Mystic
	Adept
)

// Archetypes lists every archetype in declaration order.
var Archetypes = []Archetype{Warrior, Skirmisher, Mystic, Adept}

var archetypeNames = [...]string{"Warrior", "Skirmisher", "Mystic", "Adept"}

func (a Archetype) String() string {
	if a < 0 || int(a) >= len(archetypeNames) {
		return "unknown"
	}
	return archetypeNames[a]
}

// PrimaryResource is the resource pool the archetype spends.
// Mystics channel Aether, everyone else burns Stamina.
func (a Archetype) PrimaryResource() Resource {
	if a == Mystic {
		return Aether
	}
	return Stamina
}

// IsCaster reports whether the archetype spends Aether.
func (a Archetype) IsCaster() bool {
	return a.PrimaryResource() == Aether
}

func (a Archetype) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseArchetype resolves an archetype name case-insensitively.
func ParseArchetype(s string) (Archetype, error) {
	return catalog.ParseEnum("archetype", Archetypes, s)
}

// AttributeCategory splits attributes into body and mind.
type AttributeCategory int

const (
	Physical AttributeCategory = iota
	Mental
)

// AttributeCategories lists every category in declaration order.
var AttributeCategories = []AttributeCategory{Physical, Mental}

func (c AttributeCategory) String() string {
	switch c {
	case Physical:
		return "Physical"
	case Mental:
		return "Mental"
	default:
		return "unknown"
	}
}

func (c AttributeCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseAttributeCategory resolves a category name case-insensitively.
func ParseAttributeCategory(s string) (AttributeCategory, error) {
	return catalog.ParseEnum("attribute category", AttributeCategories, s)
}

// Attribute is one of the five core character attributes.
type Attribute int

const (
	Might Attribute = iota
	Finesse
	Wits
	Will
	Sturdiness
)

// Attributes lists every attribute in declaration order.
var Attributes = []Attribute{Might, Finesse, Wits, Will, Sturdiness}

var attributeNames = [...]string{"Might", "Finesse", "Wits", "Will", "Sturdiness"}

func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attributeNames) {
		return "unknown"
	}
	return attributeNames[a]
}

// Category returns the fixed category of the attribute.
func (a Attribute) Category() AttributeCategory {
	switch a {
	case Wits, Will:
		return Mental
	default:
		return Physical
	}
}

// Abbreviation is the three-letter short form shown on character sheets.
func (a Attribute) Abbreviation() string {
	switch a {
	case Might:
		return "MIG"
	case Finesse:
		return "FIN"
	case Wits:
		return "WIT"
	case Will:
		return "WIL"
	case Sturdiness:
		return "STU"
	default:
		return ""
	}
}

func (a Attribute) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAttribute resolves an attribute name case-insensitively.
func ParseAttribute(s string) (Attribute, error) {
	return catalog.ParseEnum("attribute", Attributes, s)
}

// Resource is a spendable or trackable character resource.
type Resource int

const (
	Health Resource = iota
	Stamina
	Aether
	Rage
	Momentum
	Coherence
	Savagery
)

// Resources lists every resource in declaration order.
var Resources = []Resource{Health, Stamina, Aether, Rage, Momentum, Coherence, Savagery}

var resourceNames = [...]string{"Health", "Stamina", "Aether", "Rage", "Momentum", "Coherence", "Savagery"}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return "unknown"
	}
	return resourceNames[r]
}

func (r Resource) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseResource resolves a resource name case-insensitively.
func ParseResource(s string) (Resource, error) {
	return catalog.ParseEnum("resource", Resources, s)
}

// AbilityType says how an ability is triggered.
type AbilityType int

const (
	Active AbilityType = iota
	Passive
	Reaction
)

// AbilityTypes lists every ability type in declaration order.
var AbilityTypes = []AbilityType{Active, Passive, Reaction}

func (t AbilityType) String() string {
	switch t {
	case Active:
		return "Active"
	case Passive:
		return "Passive"
	case Reaction:
		return "Reaction"
	default:
		return "unknown"
	}
}

func (t AbilityType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseAbilityType resolves an ability type case-insensitively.
func ParseAbilityType(s string) (AbilityType, error) {
	return catalog.ParseEnum("ability type", AbilityTypes, s)
}

// Versions is the document version range every rules family accepts.
const Versions = ">= 1.0.0, < 2.0.0"
