package specialization

import (
	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"
)

// Key identifies one of the seventeen specializations.
type Key int

const (
	Berserkr Key = iota
	IronBane
	Skjaldmaer
	SkarHordeAspirant
	AtgeirWielder
	Veidimadur
	MyrkGengr
	Strandhogg
	HlekkrMaster
	Seidkona
	EchoCaller
	VardWarden
	BoneSetter
	JotunReader
	Skald
	ScrapTinker
	Einbui
)

// Keys lists every specialization in declaration order.
var Keys = []Key{
	Berserkr, IronBane, Skjaldmaer, SkarHordeAspirant, AtgeirWielder,
	Veidimadur, MyrkGengr, Strandhogg, HlekkrMaster,
	Seidkona, EchoCaller, VardWarden,
	BoneSetter, JotunReader, Skald, ScrapTinker, Einbui,
}

type meta struct {
	name      string
	archetype rules.Archetype
	path      Path
}

var metadata = [...]meta{
	Berserkr:          {"Berserkr", rules.Warrior, Heretical},
	IronBane:          {"IronBane", rules.Warrior, Coherent},
	Skjaldmaer:        {"Skjaldmaer", rules.Warrior, Coherent},
	SkarHordeAspirant: {"SkarHordeAspirant", rules.Warrior, Heretical},
	AtgeirWielder:     {"AtgeirWielder", rules.Warrior, Coherent},
	Veidimadur:        {"Veidimadur", rules.Skirmisher, Coherent},
	MyrkGengr:         {"MyrkGengr", rules.Skirmisher, Heretical},
	Strandhogg:        {"Strandhogg", rules.Skirmisher, Coherent},
	HlekkrMaster:      {"HlekkrMaster", rules.Skirmisher, Coherent},
	Seidkona:          {"Seidkona", rules.Mystic, Heretical},
	EchoCaller:        {"EchoCaller", rules.Mystic, Heretical},
	VardWarden:        {"VardWarden", rules.Mystic, Coherent},
	BoneSetter:        {"BoneSetter", rules.Adept, Coherent},
	JotunReader:       {"JotunReader", rules.Adept, Coherent},
	Skald:             {"Skald", rules.Adept, Coherent},
	ScrapTinker:       {"ScrapTinker", rules.Adept, Coherent},
	Einbui:            {"Einbui", rules.Adept, Coherent},
}

func (k Key) valid() bool {
	return k >= 0 && int(k) < len(metadata)
}

func (k Key) String() string {
	if !k.valid() {
		return "unknown"
	}
	return metadata[k].name
}

// Archetype is the parent archetype the key implies.
func (k Key) Archetype() rules.Archetype {
	return metadata[k].archetype
}

// Path is the path classification the key implies.
func (k Key) Path() Path {
	return metadata[k].path
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKey resolves a specialization id case-insensitively.
func ParseKey(s string) (Key, error) {
	return catalog.ParseEnum("specialization", Keys, s)
}

// Path says whether a specialization draws on corrupted power.
type Path int

const (
	Coherent Path = iota
	Heretical
)

// Paths lists every path type.
var Paths = []Path{Coherent, Heretical}

func (p Path) String() string {
	switch p {
	case Coherent:
		return "Coherent"
	case Heretical:
		return "Heretical"
	default:
		return "unknown"
	}
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Role is the tactical niche a specialization fills in a party.
type Role int

const (
	Unspecified Role = iota
	Damage
	Tank
	Support
	Control
	Utility
)

// Roles lists every role.
var Roles = []Role{Unspecified, Damage, Tank, Support, Control, Utility}

func (r Role) String() string {
	switch r {
	case Damage:
		return "Damage"
	case Tank:
		return "Tank"
	case Support:
		return "Support"
	case Control:
		return "Control"
	case Utility:
		return "Utility"
	default:
		return "Unspecified"
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
