package lineage

import (
	"slices"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"
)

// Key identifies one of the four lineages.
type Key int

const (
	ClanBorn Key = iota
	RuneMarked
	IronBlooded
	BogWalker
)

// Keys lists every lineage in declaration order.
var Keys = []Key{ClanBorn, RuneMarked, IronBlooded, BogWalker}

func (k Key) String() string {
	switch k {
	case ClanBorn:
		return "ClanBorn"
	case RuneMarked:
		return "RuneMarked"
	case IronBlooded:
		return "IronBlooded"
	case BogWalker:
		return "BogWalker"
	default:
		return "unknown"
	}
}

// Tainted reports whether the lineage carries the Blight in its blood.
func (k Key) Tainted() bool {
	return k == RuneMarked || k == BogWalker
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKey resolves a lineage id case-insensitively. "clan-born" and
// "Clan Born" both resolve to ClanBorn.
func ParseKey(s string) (Key, error) {
	return catalog.ParseEnum("lineage", Keys, s)
}

// Lineage is the bloodline a character descends from.
type Lineage struct {
	ID                 Key                 `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Tainted            bool                `json:"tainted"`
	AttributeModifiers []AttributeModifier `json:"attributeModifiers"`
	Traits             []Trait             `json:"traits"`
}

// Boosted returns the attributes the lineage raises, in modifier order.
func (l Lineage) Boosted() []rules.Attribute {
	out := make([]rules.Attribute, 0, len(l.AttributeModifiers))
	for _, m := range l.AttributeModifiers {
		if m.Amount > 0 {
			out = append(out, m.Attribute)
		}
	}
	return out
}

// Clone returns a deep copy of l.
func (l Lineage) Clone() Lineage {
	l.AttributeModifiers = slices.Clone(l.AttributeModifiers)
	l.Traits = slices.Clone(l.Traits)
	return l
}

func (l *Lineage) trait(id string) (Trait, bool) {
	for _, t := range l.Traits {
		if strings.EqualFold(t.ID, id) {
			return t, true
		}
	}
	return Trait{}, false
}

// AttributeModifier raises or lowers one attribute at character creation.
type AttributeModifier struct {
	Attribute rules.Attribute `json:"attribute"`
	Amount    int             `json:"amount"`
}

// Trait is a passive quirk granted by a lineage.
type Trait struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
