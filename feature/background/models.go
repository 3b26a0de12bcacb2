package background

import (
	"slices"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
)

// Key identifies one of the six backgrounds.
type Key int

const (
	Scavenger Key = iota
	Soldier
	Scholar
	Smith
	Outcast
	Pilgrim
)

// Keys lists every background in declaration order.
var Keys = []Key{Scavenger, Soldier, Scholar, Smith, Outcast, Pilgrim}

var keyNames = [...]string{"Scavenger", "Soldier", "Scholar", "Smith", "Outcast", "Pilgrim"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// Origin is the way of life the background implies.
func (k Key) Origin() Origin {
	switch k {
	case Soldier, Scholar, Smith:
		return Settled
	default:
		return Wanderer
	}
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKey resolves a background id case-insensitively.
func ParseKey(s string) (Key, error) {
	return catalog.ParseEnum("background", Keys, s)
}

// Origin says whether a background grew up inside a hold or on the roads.
type Origin int

const (
	Settled Origin = iota
	Wanderer
)

// Origins lists every origin.
var Origins = []Origin{Settled, Wanderer}

func (o Origin) String() string {
	switch o {
	case Settled:
		return "Settled"
	case Wanderer:
		return "Wanderer"
	default:
		return "unknown"
	}
}

func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ParseOrigin resolves an origin case-insensitively.
func ParseOrigin(s string) (Origin, error) {
	return catalog.ParseEnum("origin", Origins, s)
}

// Grant is how a background improves a skill.
type Grant int

const (
	Proficiency Grant = iota
	Expertise
	Bonus
)

// Grants lists every grant kind.
var Grants = []Grant{Proficiency, Expertise, Bonus}

func (g Grant) String() string {
	switch g {
	case Proficiency:
		return "Proficiency"
	case Expertise:
		return "Expertise"
	case Bonus:
		return "Bonus"
	default:
		return "unknown"
	}
}

func (g Grant) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Background is a character's life before adventuring.
type Background struct {
	ID            Key          `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Origin        Origin       `json:"origin"`
	SkillGrants   []SkillGrant `json:"skillGrants"`
	StartingItems []string     `json:"startingItems"`
}

// Clone returns a deep copy of b.
func (b Background) Clone() Background {
	b.SkillGrants = slices.Clone(b.SkillGrants)
	b.StartingItems = slices.Clone(b.StartingItems)
	return b
}

// grant returns the first grant of skill, matched case-insensitively.
func (b *Background) grant(skill string) (SkillGrant, bool) {
	for _, g := range b.SkillGrants {
		if strings.EqualFold(g.Skill, skill) {
			return g, true
		}
	}
	return SkillGrant{}, false
}

// SkillGrant improves one skill. Amount is only meaningful for Bonus grants.
type SkillGrant struct {
	Skill  string `json:"skill"`
	Grant  Grant  `json:"grant"`
	Amount int    `json:"amount,omitempty"`
}
