package lineage

import (
	"fmt"
	"math"
	"strings"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"go.uber.org/zap"
)

const (
	Family   = "lineages"
	Resource = "lineages.json"
)

// Filter names.
const (
	FilterTainted   = "tainted"
	FilterUntainted = "untainted"
)

var attributeField = catalog.EnumField[rules.Attribute]{Field: "attribute", Type: "attribute", Values: rules.Attributes, Policy: catalog.Required}

// Definition returns the catalog definition of the lineage family.
func Definition() catalog.Definition[Key, Lineage, *Index] {
	return catalog.Definition[Key, Lineage, *Index]{
		Family:      Family,
		Resource:    Resource,
		Keys:        catalog.KeySpec[Key]{Type: "lineage", Field: "id", Values: Keys},
		Versions:    rules.Versions,
		Validate:    validate,
		ValidateAll: validateTraitIDs,
		Map:         mapLineage,
		Index:       buildIndex,
	}
}

func validate(s *catalog.Scope, k Key) {
	s.Text("name")
	s.OptionalText("description")
	// tainted may be omitted; the key decides it either way.
	if s.Record().Has("tainted") {
		s.Flag("tainted")
		if tainted, ok := s.Record().Flag("tainted"); ok && tainted != k.Tainted() {
			s.Fail(catalog.RuleConsistency, "tainted", "declared %t but %s implies %t", tainted, k, k.Tainted())
		}
	}

	seen := make(map[rules.Attribute]bool)
	for i, m := range s.List("attributeModifiers", 1) {
		ms := s.Nested(rules.Indexed("attributeModifiers", i), m)
		attr, ok := attributeField.Check(ms)
		if ok {
			if seen[attr] {
				ms.Fail(catalog.RuleStructure, attributeField.Field, "%s is modified more than once", attr)
			}
			seen[attr] = true
		}
		ms.Integer("amount", math.MinInt32, math.MaxInt32)
		if v, ok := m.Integer("amount"); ok && v == 0 {
			ms.Fail(catalog.RuleStructure, "amount", "must not be zero")
		}
	}

	for i, t := range s.OptionalList("traits") {
		ts := s.Nested(rules.Indexed("traits", i), t)
		ts.Text("id")
		ts.Text("name")
		ts.OptionalText("description")
	}
}

func validateTraitIDs(c *catalog.Checker, records map[Key]catalog.Record) {
	owners := make(map[string]Key)
	for _, k := range Keys {
		traits, _ := records[k].List("traits")
		for i, t := range traits {
			id, ok := t.Text("id")
			if !ok || id == "" {
				continue
			}
			folded := strings.ToLower(id)
			if owner, dup := owners[folded]; dup {
				c.Add(catalog.Violation{
					Rule:    catalog.RuleUniqueness,
					Record:  k.String(),
					Field:   fmt.Sprintf("traits[%d].id", i),
					Message: fmt.Sprintf("trait id %q already used by %s", id, owner),
				})
				continue
			}
			owners[folded] = k
		}
	}
}

func mapLineage(k Key, rec catalog.Record) (Lineage, error) {
	l := Lineage{ID: k}
	l.Name, _ = rec.Text("name")
	l.Description, _ = rec.Text("description")
	l.Tainted = k.Tainted()

	mods, _ := rec.List("attributeModifiers")
	l.AttributeModifiers = make([]AttributeModifier, 0, len(mods))
	for _, m := range mods {
		attr, err := attributeField.Value(m)
		if err != nil {
			return Lineage{}, err
		}
		amount, _ := m.Integer("amount")
		l.AttributeModifiers = append(l.AttributeModifiers, AttributeModifier{Attribute: attr, Amount: amount})
	}

	traits, _ := rec.List("traits")
	l.Traits = make([]Trait, 0, len(traits))
	for _, t := range traits {
		var tr Trait
		tr.ID, _ = t.Text("id")
		tr.Name, _ = t.Text("name")
		tr.Description, _ = t.Text("description")
		l.Traits = append(l.Traits, tr)
	}
	return l, nil
}

// Index holds the lineage lookups.
type Index struct {
	table *catalog.Table[Key, rules.Attribute, Lineage]
}

func (x *Index) Table() *catalog.Table[Key, rules.Attribute, Lineage] {
	return x.table
}

var tableSpec = catalog.TableSpec[Key, rules.Attribute, Lineage]{
	Key:      func(l *Lineage) Key { return l.ID },
	Groups:   rules.Attributes,
	GroupsOf: func(l *Lineage) []rules.Attribute { return l.Boosted() },
	Filters: map[string]func(*Lineage) bool{
		FilterTainted:   func(l *Lineage) bool { return l.Tainted },
		FilterUntainted: func(l *Lineage) bool { return !l.Tainted },
	},
	Clone: (*Lineage).Clone,
}

func buildIndex(lineages []Lineage) *Index {
	return &Index{table: catalog.NewTable(tableSpec, lineages)}
}

// Catalog is the read API over the lineage rules.
type Catalog struct {
	*catalog.Reader[Key, rules.Attribute, Lineage, *Index]
}

// NewCatalog creates a lazily loaded lineage catalog.
func NewCatalog(source catalog.Source, logger *zap.Logger, opts ...catalog.Option) *Catalog {
	c := catalog.New(Definition(), source, logger, opts...)
	return &Catalog{Reader: catalog.NewReader[Key, rules.Attribute](c)}
}

// Boosting returns the lineages raising attr.
func (c *Catalog) Boosting(attr rules.Attribute) ([]Lineage, error) {
	return c.ByGroup(attr)
}

// Tainted returns the Blight-touched lineages.
func (c *Catalog) Tainted() ([]Lineage, error) {
	return c.Filter(FilterTainted)
}

// FindTrait resolves a trait id to the lineage granting it.
func (c *Catalog) FindTrait(id string) (Lineage, Trait, bool, error) {
	idx, err := c.Index()
	if err != nil {
		return Lineage{}, Trait{}, false, err
	}
	id = strings.TrimSpace(id)
	l, ok := idx.table.Find(func(l *Lineage) bool {
		_, found := l.trait(id)
		return found
	})
	if !ok {
		return Lineage{}, Trait{}, false, nil
	}
	t, _ := l.trait(id)
	return l, t, true, nil
}
