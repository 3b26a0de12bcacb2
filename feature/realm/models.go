package realm

import (
	"slices"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
)

// Key identifies one of the nine realms.
type Key int

const (
	Midgard Key = iota
	Muspelheim
	Niflheim
	Alfheim
	Svartalfheim
	Jotunheim
	Vanaheim
	Helheim
	Asgard
)

// Keys lists every realm in declaration order.
var Keys = []Key{Midgard, Muspelheim, Niflheim, Alfheim, Svartalfheim, Jotunheim, Vanaheim, Helheim, Asgard}

var metadata = [...]struct {
	name  string
	biome Biome
}{
	Midgard:      {"Midgard", Temperate},
	Muspelheim:   {"Muspelheim", Volcanic},
	Niflheim:     {"Niflheim", Frozen},
	Alfheim:      {"Alfheim", Luminous},
	Svartalfheim: {"Svartalfheim", Subterranean},
	Jotunheim:    {"Jotunheim", Frozen},
	Vanaheim:     {"Vanaheim", Verdant},
	Helheim:      {"Helheim", Necrotic},
	Asgard:       {"Asgard", Celestial},
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(metadata) {
		return "unknown"
	}
	return metadata[k].name
}

// Biome is the biome the realm's key implies.
func (k Key) Biome() Biome {
	return metadata[k].biome
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKey resolves a realm id case-insensitively.
func ParseKey(s string) (Key, error) {
	return catalog.ParseEnum("realm", Keys, s)
}

// Biome is the dominant environment of a realm.
type Biome int

const (
	Temperate Biome = iota
	Volcanic
	Frozen
	Luminous
	Subterranean
	Verdant
	Necrotic
	Celestial
)

// Biomes lists every biome.
var Biomes = []Biome{Temperate, Volcanic, Frozen, Luminous, Subterranean, Verdant, Necrotic, Celestial}

var biomeNames = [...]string{"Temperate", "Volcanic", "Frozen", "Luminous", "Subterranean", "Verdant", "Necrotic", "Celestial"}

func (b Biome) String() string {
	if b < 0 || int(b) >= len(biomeNames) {
		return "unknown"
	}
	return biomeNames[b]
}

func (b Biome) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// ParseBiome resolves a biome name case-insensitively.
func ParseBiome(s string) (Biome, error) {
	return catalog.ParseEnum("biome", Biomes, s)
}

// Severity grades how dangerous a hazard is.
type Severity int

const (
	Minor Severity = iota
	Major
	Deadly
)

// Severities lists every severity, mildest first.
var Severities = []Severity{Minor, Major, Deadly}

func (s Severity) String() string {
	switch s {
	case Minor:
		return "Minor"
	case Major:
		return "Major"
	case Deadly:
		return "Deadly"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Realm is one of the nine worlds a party can travel to.
type Realm struct {
	ID       Key      `json:"id"`
	Name     string   `json:"name"`
	Biome    Biome    `json:"biome"`
	Danger   int      `json:"danger"`
	Adjacent []Key    `json:"adjacent"`
	Hazards  []Hazard `json:"hazards"`
}

// Clone returns a deep copy of r.
func (r Realm) Clone() Realm {
	r.Adjacent = slices.Clone(r.Adjacent)
	r.Hazards = slices.Clone(r.Hazards)
	return r
}

func (r *Realm) hazard(id string) (Hazard, bool) {
	for _, h := range r.Hazards {
		if strings.EqualFold(h.ID, id) {
			return h, true
		}
	}
	return Hazard{}, false
}

// Hazard is an environmental threat found in a realm.
type Hazard struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
}
