package realm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"go.uber.org/zap"
)

const (
	Family   = "realms"
	Resource = "realms.json"
)

// Danger bounds.
const (
	MinDanger = 1
	MaxDanger = 5
)

// Filter names.
const (
	FilterSafe     = "safe"
	FilterPerilous = "perilous"
)

var (
	biomeField    = catalog.EnumField[Biome]{Field: "biome", Type: "biome", Values: Biomes, Policy: catalog.Required}
	severityField = catalog.EnumField[Severity]{Field: "severity", Type: "severity", Values: Severities, Policy: catalog.Optional, Default: Minor}
)

// Definition returns the catalog definition of the realm family.
func Definition() catalog.Definition[Key, Realm, *Index] {
	return catalog.Definition[Key, Realm, *Index]{
		Family:      Family,
		Resource:    Resource,
		Keys:        catalog.KeySpec[Key]{Type: "realm", Field: "id", Values: Keys},
		Versions:    rules.Versions,
		Validate:    validate,
		ValidateAll: validateAll,
		Map:         mapRealm,
		Index:       buildIndex,
	}
}

func validate(s *catalog.Scope, k Key) {
	s.Text("name")
	if b, ok := biomeField.Check(s); ok {
		s.Consistent(biomeField.Field, b, k.Biome())
	}
	s.Integer("danger", MinDanger, MaxDanger)

	seen := make(map[Key]bool)
	for i, id := range s.Strings("adjacent", 1) {
		field := rules.Indexed("adjacent", i)
		other, err := ParseKey(id)
		switch {
		case err != nil:
			s.Fail(catalog.RuleStructure, field, "%v", err)
		case other == k:
			s.Fail(catalog.RuleStructure, field, "a realm cannot be adjacent to itself")
		case seen[other]:
			s.Fail(catalog.RuleStructure, field, "%s is listed more than once", other)
		default:
			seen[other] = true
		}
	}

	for i, h := range s.OptionalList("hazards") {
		hs := s.Nested(rules.Indexed("hazards", i), h)
		hs.Text("id")
		hs.Text("name")
		severityField.Check(hs)
	}
}

// validateAll checks that adjacency is symmetric and hazard ids are unique.
func validateAll(c *catalog.Checker, records map[Key]catalog.Record) {
	neighbors := make(map[Key][]Key, len(records))
	for k, rec := range records {
		neighbors[k] = adjacentKeys(rec)
	}
	for _, k := range Keys {
		for _, other := range neighbors[k] {
			if !slices.Contains(neighbors[other], k) {
				c.Add(catalog.Violation{
					Rule:    catalog.RuleConsistency,
					Record:  k.String(),
					Field:   "adjacent",
					Message: fmt.Sprintf("%s lists %s but %s does not list %s", k, other, other, k),
				})
			}
		}
	}

	owners := make(map[string]Key)
	for _, k := range Keys {
		hazards, _ := records[k].List("hazards")
		for i, h := range hazards {
			id, ok := h.Text("id")
			if !ok || id == "" {
				continue
			}
			folded := strings.ToLower(id)
			if owner, dup := owners[folded]; dup {
				c.Add(catalog.Violation{
					Rule:    catalog.RuleUniqueness,
					Record:  k.String(),
					Field:   fmt.Sprintf("hazards[%d].id", i),
					Message: fmt.Sprintf("hazard id %q already used by %s", id, owner),
				})
				continue
			}
			owners[folded] = k
		}
	}
}

// adjacentKeys returns the valid, distinct neighbors a record lists.
func adjacentKeys(rec catalog.Record) []Key {
	ids, _ := rec.Strings("adjacent")
	out := make([]Key, 0, len(ids))
	for _, id := range ids {
		if k, err := ParseKey(id); err == nil && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

func mapRealm(k Key, rec catalog.Record) (Realm, error) {
	biome, err := biomeField.Value(rec)
	if err != nil {
		return Realm{}, err
	}
	r := Realm{ID: k, Biome: biome, Adjacent: adjacentKeys(rec)}
	r.Name, _ = rec.Text("name")
	r.Danger, _ = rec.Integer("danger")

	hazards, _ := rec.List("hazards")
	r.Hazards = make([]Hazard, 0, len(hazards))
	for _, h := range hazards {
		sev, _ := severityField.Value(h)
		hz := Hazard{Severity: sev}
		hz.ID, _ = h.Text("id")
		hz.Name, _ = h.Text("name")
		r.Hazards = append(r.Hazards, hz)
	}
	return r, nil
}

// Index holds the realm lookups.
type Index struct {
	table     *catalog.Table[Key, Biome, Realm]
	adjacency map[Key]map[Key]bool
}

func (x *Index) Table() *catalog.Table[Key, Biome, Realm] {
	return x.table
}

var tableSpec = catalog.TableSpec[Key, Biome, Realm]{
	Key:      func(r *Realm) Key { return r.ID },
	Groups:   Biomes,
	GroupsOf: func(r *Realm) []Biome { return []Biome{r.Biome} },
	Filters: map[string]func(*Realm) bool{
		FilterSafe:     func(r *Realm) bool { return r.Danger <= 2 },
		FilterPerilous: func(r *Realm) bool { return r.Danger >= 4 },
	},
	Clone: (*Realm).Clone,
}

func buildIndex(realms []Realm) *Index {
	idx := &Index{
		table:     catalog.NewTable(tableSpec, realms),
		adjacency: make(map[Key]map[Key]bool, len(realms)),
	}
	for _, r := range realms {
		set := make(map[Key]bool, len(r.Adjacent))
		for _, other := range r.Adjacent {
			set[other] = true
		}
		idx.adjacency[r.ID] = set
	}
	return idx
}

// Catalog is the read API over the realm rules.
type Catalog struct {
	*catalog.Reader[Key, Biome, Realm, *Index]
}

// NewCatalog creates a lazily loaded realm catalog.
func NewCatalog(source catalog.Source, logger *zap.Logger, opts ...catalog.Option) *Catalog {
	c := catalog.New(Definition(), source, logger, opts...)
	return &Catalog{Reader: catalog.NewReader[Key, Biome](c)}
}

// ByBiome returns the realms of one biome.
func (c *Catalog) ByBiome(b Biome) ([]Realm, error) {
	return c.ByGroup(b)
}

// Adjacent reports whether a party can travel directly between a and b.
func (c *Catalog) Adjacent(a, b Key) (bool, error) {
	idx, err := c.Index()
	if err != nil {
		return false, err
	}
	return idx.adjacency[a][b], nil
}

// Neighbors returns the realms adjacent to k, in the order k lists them.
func (c *Catalog) Neighbors(k Key) ([]Realm, error) {
	idx, err := c.Index()
	if err != nil {
		return nil, err
	}
	r, ok := idx.table.Lookup(k)
	if !ok {
		return []Realm{}, nil
	}
	out := make([]Realm, 0, len(r.Adjacent))
	for _, other := range r.Adjacent {
		n, _ := idx.table.Get(other)
		out = append(out, n)
	}
	return out, nil
}

// FindHazard resolves a hazard id to the realm it occurs in.
func (c *Catalog) FindHazard(id string) (Realm, Hazard, bool, error) {
	idx, err := c.Index()
	if err != nil {
		return Realm{}, Hazard{}, false, err
	}
	id = strings.TrimSpace(id)
	r, ok := idx.table.Find(func(r *Realm) bool {
		_, found := r.hazard(id)
		return found
	})
	if !ok {
		return Realm{}, Hazard{}, false, nil
	}
	h, _ := r.hazard(id)
	return r, h, true, nil
}
