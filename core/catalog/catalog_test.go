package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// A tiny four-key family used to exercise the engine.

type letter int

const (
	A letter = iota
	B
	C
	D
)

var letters = []letter{A, B, C, D}

func (l letter) String() string {
	switch l {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	default:
		return "unknown"
	}
}

type kind int

const (
	Vowel kind = iota
	Consonant
)

func (k kind) String() string {
	if k == Vowel {
		return "Vowel"
	}
	return "Consonant"
}

func kindOf(l letter) kind {
	if l == A {
		return Vowel
	}
	return Consonant
}

type tone int

const (
	Plain tone = iota
	Bold
	Soft
)

func (t tone) String() string {
	switch t {
	case Bold:
		return "Bold"
	case Soft:
		return "Soft"
	default:
		return "Plain"
	}
}

type entry struct {
	Key   letter
	Kind  kind
	Name  string
	Tone  tone
	Marks []string
}

type index struct {
	byKey  map[letter]*entry
	byKind map[kind][]*entry
	all    []entry
}

var (
	kindField = catalog.EnumField[kind]{Field: "kind", Type: "kind", Values: []kind{Vowel, Consonant}, Policy: catalog.Required}
	toneField = catalog.EnumField[tone]{Field: "tone", Type: "tone", Values: []tone{Plain, Bold, Soft}, Policy: catalog.Optional, Default: Plain}
)

func lettersDefinition() catalog.Definition[letter, entry, *index] {
	return catalog.Definition[letter, entry, *index]{
		Family:   "letters",
		Resource: "letters.json",
		Keys:     catalog.KeySpec[letter]{Type: "letter", Field: "id", Values: letters},
		Versions: ">= 1.0.0, < 2.0.0",
		Validate: func(s *catalog.Scope, k letter) {
			s.Text("name")
			if declared, ok := kindField.Check(s); ok {
				s.Consistent("kind", declared, kindOf(k))
			}
			toneField.Check(s)
			s.OptionalStrings("marks")
		},
		Map: func(k letter, rec catalog.Record) (entry, error) {
			kd, err := kindField.Value(rec)
			if err != nil {
				return entry{}, err
			}
			tn, _ := toneField.Value(rec)
			name, _ := rec.Text("name")
			marks, _ := rec.Strings("marks")
			if marks == nil {
				marks = []string{}
			}
			return entry{Key: k, Kind: kd, Name: name, Tone: tn, Marks: marks}, nil
		},
		Index: func(entities []entry) *index {
			idx := &index{
				byKey:  make(map[letter]*entry, len(entities)),
				byKind: map[kind][]*entry{Vowel: {}, Consonant: {}},
				all:    entities,
			}
			for i := range idx.all {
				e := &idx.all[i]
				idx.byKey[e.Key] = e
				idx.byKind[e.Kind] = append(idx.byKind[e.Kind], e)
			}
			return idx
		},
	}
}

func validRecords() []map[string]any {
	return []map[string]any{
		{"id": "D", "name": "Dee", "kind": "Consonant"},
		{"id": "B", "name": "Bee", "kind": "Consonant", "tone": "Bold"},
		{"id": "A", "name": "Ay", "kind": "Vowel", "marks": []string{"first"}},
		{"id": "C", "name": "See", "kind": "Consonant"},
	}
}

func document(t *testing.T, records []map[string]any) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{"version": "1.0.0", "letters": records})
	require.NoError(t, err)
	return data
}

func newLetters(t *testing.T, records []map[string]any) *catalog.Catalog[letter, entry, *index] {
	src := catalog.NewMemorySource(map[string][]byte{"letters.json": document(t, records)})
	return catalog.New(lettersDefinition(), src, zap.NewNop())
}

func loadError(t *testing.T, err error) *catalog.LoadError {
	t.Helper()
	var le *catalog.LoadError
	require.True(t, errors.As(err, &le), "expected *catalog.LoadError, got %v", err)
	return le
}

func TestCatalog_LoadsValidDocument(t *testing.T) {
	cat := newLetters(t, validRecords())
	assert.False(t, cat.Ready())
	assert.Equal(t, int64(0), cat.Loads())

	idx, err := cat.Index()
	require.NoError(t, err)

	require.Len(t, idx.all, 4)
	var order []string
	for _, e := range idx.all {
		order = append(order, e.Key.String())
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, order)
	assert.Equal(t, "Ay", idx.byKey[A].Name)
	assert.Equal(t, []string{"first"}, idx.byKey[A].Marks)
	assert.NotNil(t, idx.byKey[C].Marks)
	assert.Equal(t, Bold, idx.byKey[B].Tone)
	assert.Len(t, idx.byKind[Vowel], 1)
	assert.Len(t, idx.byKind[Consonant], 3)

	// Later calls never rerun the pipeline.
	_, err = cat.Index()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cat.Loads())

	st := cat.Status()
	assert.True(t, st.Ready)
	assert.Equal(t, "letters", st.Family)
	assert.Equal(t, "letters.json", st.Resource)
	assert.False(t, st.LoadedAt.IsZero())
}

func TestCatalog_CaseInsensitiveFieldNames(t *testing.T) {
	records := validRecords()
	records[0] = map[string]any{"ID": "D", "Name": "Dee", "KIND": "consonant"}
	cat := newLetters(t, records)

	idx, err := cat.Index()
	require.NoError(t, err)
	assert.Equal(t, "Dee", idx.byKey[D].Name)
}

func TestCatalog_Deterministic(t *testing.T) {
	first, err := newLetters(t, validRecords()).Index()
	require.NoError(t, err)
	second, err := newLetters(t, validRecords()).Index()
	require.NoError(t, err)

	assert.Equal(t, first.all, second.all)
}

type gatedSource struct {
	release chan struct{}
	reads   atomic.Int64
	data    []byte
}

func (g *gatedSource) Read(_ context.Context, _ string) ([]byte, error) {
	g.reads.Add(1)
	<-g.release
	return g.data, nil
}

func TestCatalog_ConcurrentFirstReadsLoadOnce(t *testing.T) {
	src := &gatedSource{release: make(chan struct{}), data: document(t, validRecords())}
	cat := catalog.New(lettersDefinition(), src, zap.NewNop())

	const callers = 64
	results := make([]*index, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cat.Index()
		}(i)
	}

	assert.Eventually(t, func() bool { return src.reads.Load() == 1 }, time.Second, time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int64(1), src.reads.Load())
	assert.Equal(t, int64(1), cat.Loads())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
		assert.Len(t, results[i].all, 4)
	}
}

func TestCatalog_ConcurrentWaitersShareFailure(t *testing.T) {
	release := make(chan struct{})
	var reads atomic.Int64
	src := catalog.SourceFunc(func(context.Context, string) ([]byte, error) {
		reads.Add(1)
		<-release
		return []byte("{not json"), nil
	})
	cat := catalog.New(lettersDefinition(), src, zap.NewNop())

	const callers = 16
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cat.Index()
		}(i)
	}

	assert.Eventually(t, func() bool { return reads.Load() == 1 }, time.Second, time.Millisecond)
	// Let every goroutine reach the flight before releasing it.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, catalog.ErrMalformed)
	}
	assert.False(t, cat.Ready())
}

func TestCatalog_RetriesAfterFailure(t *testing.T) {
	src := catalog.NewMemorySource(nil)
	cat := catalog.New(lettersDefinition(), src, zap.NewNop())

	_, err := cat.Index()
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrResourceNotFound)
	assert.Contains(t, err.Error(), "letters.json")
	assert.False(t, cat.Ready())

	src.Put("letters.json", document(t, validRecords()))

	idx, err := cat.Index()
	require.NoError(t, err)
	assert.Len(t, idx.all, 4)
	assert.Equal(t, int64(2), cat.Loads())
}

func TestCatalog_Unreadable(t *testing.T) {
	src := catalog.SourceFunc(func(context.Context, string) ([]byte, error) {
		return nil, errors.New("connection reset")
	})
	cat := catalog.New(lettersDefinition(), src, zap.NewNop())

	err := cat.Warm()
	assert.ErrorIs(t, err, catalog.ErrUnreadable)
	assert.Equal(t, catalog.ErrUnreadable, loadError(t, err).Kind())
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCatalog_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"NotJSON", `{"letters": [`, "letters.json"},
		{"TopLevelArray", `[]`, "top-level value must be an object"},
		{"MissingCollection", `{"version": "1.0.0"}`, `missing top-level array "letters"`},
		{"CollectionNotArray", `{"letters": {}}`, `"letters" must be an array`},
		{"RecordNotObject", `{"letters": [1]}`, "letters[0] must be an object"},
		{"TrailingData", `{"letters": []} {}`, "trailing data"},
		{"DuplicateFoldedField", `{"letters": [{"id": "A", "ID": "B"}]}`, "given twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := catalog.NewMemorySource(map[string][]byte{"letters.json": []byte(tt.body)})
			cat := catalog.New(lettersDefinition(), src, zap.NewNop())

			err := cat.Warm()
			require.Error(t, err)
			assert.ErrorIs(t, err, catalog.ErrMalformed)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCatalog_Cardinality(t *testing.T) {
	t.Run("TooFew", func(t *testing.T) {
		err := newLetters(t, validRecords()[:3]).Warm()
		require.Error(t, err)
		assert.ErrorIs(t, err, catalog.ErrSchemaViolation)

		le := loadError(t, err)
		require.Len(t, le.Violations, 1)
		assert.Equal(t, catalog.RuleCardinality, le.Violations[0].Rule)
		assert.Contains(t, err.Error(), "expected exactly 4 records, found 3")
		assert.Contains(t, err.Error(), "missing: C")
	})

	t.Run("TooMany", func(t *testing.T) {
		records := append(validRecords(), map[string]any{"id": "A", "name": "Again", "kind": "Vowel"})
		err := newLetters(t, records).Warm()
		require.Error(t, err)

		le := loadError(t, err)
		require.Len(t, le.Violations, 1)
		assert.Contains(t, err.Error(), "expected exactly 4 records, found 5")
		assert.Contains(t, err.Error(), "duplicated: A")
	})
}

func TestCatalog_UnknownKey(t *testing.T) {
	records := validRecords()
	records[3]["id"] = "E"
	err := newLetters(t, records).Warm()
	require.Error(t, err)

	le := loadError(t, err)
	require.Len(t, le.Violations, 1)
	assert.Equal(t, catalog.RuleKey, le.Violations[0].Rule)
	assert.Contains(t, err.Error(), `unknown letter "E"`)
	assert.Contains(t, err.Error(), "valid values: A, B, C, D")
}

func TestCatalog_DuplicateKeyStopsValidation(t *testing.T) {
	records := validRecords()
	records[3] = map[string]any{"id": "B", "kind": "Nonsense"}
	err := newLetters(t, records).Warm()
	require.Error(t, err)

	le := loadError(t, err)
	require.Len(t, le.Violations, 1)
	assert.Equal(t, catalog.RuleUniqueness, le.Violations[0].Rule)
	assert.Contains(t, err.Error(), `duplicate letter "B"`)
}

func TestCatalog_PerRecordViolationsAccumulate(t *testing.T) {
	records := validRecords()
	records[2]["kind"] = "Consonant" // A is inherently a vowel
	records[0]["kind"] = "Shouty"
	delete(records[1], "name")
	err := newLetters(t, records).Warm()
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrSchemaViolation)

	le := loadError(t, err)
	require.Len(t, le.Violations, 3)

	rules := map[catalog.Rule]catalog.Violation{}
	for _, v := range le.Violations {
		rules[v.Rule] = v
	}
	assert.Equal(t, "A", rules[catalog.RuleConsistency].Record)
	assert.Contains(t, rules[catalog.RuleConsistency].Message, `declared "Consonant"`)
	assert.Contains(t, rules[catalog.RuleConsistency].Message, `"Vowel"`)
	assert.Contains(t, rules[catalog.RuleEnum].Message, `unknown kind "Shouty"`)
	assert.Equal(t, "name", rules[catalog.RuleStructure].Field)
	for _, v := range le.Violations {
		assert.Contains(t, err.Error(), v.Error())
	}

	var v catalog.Violation
	assert.True(t, errors.As(err, &v))
}

func TestCatalog_OptionalEnumDegrades(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	records := validRecords()
	records[1]["tone"] = "Sparkly"
	src := catalog.NewMemorySource(map[string][]byte{"letters.json": document(t, records)})
	cat := catalog.New(lettersDefinition(), src, zap.New(core))

	snap, err := cat.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, Plain, snap.Index.byKey[B].Tone)

	require.Len(t, snap.Warnings, 1)
	assert.Equal(t, "B", snap.Warnings[0].Record)
	assert.Equal(t, "tone", snap.Warnings[0].Field)
	assert.Contains(t, snap.Warnings[0].Message, `using "Plain"`)
	assert.Equal(t, 1, cat.Status().Warnings)

	entries := logs.FilterMessage("Catalog field degraded to default").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "B", entries[0].ContextMap()["record"])
}

func TestCatalog_Version(t *testing.T) {
	body := func(version string) []byte {
		doc := map[string]any{"letters": validRecords()}
		if version != "" {
			doc["version"] = version
		}
		data, err := json.Marshal(doc)
		require.NoError(t, err)
		return data
	}

	t.Run("Compatible", func(t *testing.T) {
		src := catalog.NewMemorySource(map[string][]byte{"letters.json": body("1.4.2")})
		snap, err := catalog.New(lettersDefinition(), src, nil).Snapshot()
		require.NoError(t, err)
		assert.Empty(t, snap.Warnings)
	})

	t.Run("Incompatible", func(t *testing.T) {
		src := catalog.NewMemorySource(map[string][]byte{"letters.json": body("2.0.0")})
		err := catalog.New(lettersDefinition(), src, nil).Warm()
		assert.ErrorIs(t, err, catalog.ErrMalformed)
		assert.Contains(t, err.Error(), "does not satisfy")
	})

	t.Run("NotSemver", func(t *testing.T) {
		src := catalog.NewMemorySource(map[string][]byte{"letters.json": body("latest")})
		err := catalog.New(lettersDefinition(), src, nil).Warm()
		assert.ErrorIs(t, err, catalog.ErrMalformed)
	})

	t.Run("Absent", func(t *testing.T) {
		src := catalog.NewMemorySource(map[string][]byte{"letters.json": body("")})
		snap, err := catalog.New(lettersDefinition(), src, nil).Snapshot()
		require.NoError(t, err)
		require.Len(t, snap.Warnings, 1)
		assert.Equal(t, "version", snap.Warnings[0].Field)
	})
}

func TestCatalog_MappingDefects(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		def := lettersDefinition()
		def.Map = func(k letter, _ catalog.Record) (entry, error) {
			if k == C {
				return entry{}, errors.New("boom")
			}
			return entry{Key: k}, nil
		}
		src := catalog.NewMemorySource(map[string][]byte{"letters.json": document(t, validRecords())})
		err := catalog.New(def, src, nil).Warm()
		assert.ErrorIs(t, err, catalog.ErrInternalMapping)
		assert.Contains(t, err.Error(), "C: boom")
	})

	t.Run("Panic", func(t *testing.T) {
		def := lettersDefinition()
		def.Map = func(letter, catalog.Record) (entry, error) {
			var m map[string]int
			m["x"] = 1
			return entry{}, nil
		}
		src := catalog.NewMemorySource(map[string][]byte{"letters.json": document(t, validRecords())})
		err := catalog.New(def, src, nil).Warm()
		assert.ErrorIs(t, err, catalog.ErrInternalMapping)
		assert.Contains(t, err.Error(), "panic")
	})
}

func TestCatalog_YAMLDocument(t *testing.T) {
	yamlDoc := strings.Join([]string{
		"version: 1.0.0",
		"letters:",
		"  - {id: A, name: Ay, kind: Vowel}",
		"  - {id: B, name: Bee, kind: Consonant}",
		"  - {id: C, name: See, kind: Consonant}",
		"  - {Id: D, Name: Dee, Kind: Consonant, Marks: [last]}",
	}, "\n")
	src := catalog.NewMemorySource(map[string][]byte{"letters.yaml": []byte(yamlDoc)})
	cat := catalog.New(lettersDefinition(), src, nil, catalog.WithResource("letters.yaml"))

	idx, err := cat.Index()
	require.NoError(t, err)
	assert.Equal(t, []string{"last"}, idx.byKey[D].Marks)
	assert.Equal(t, "letters.yaml", cat.Resource())
}

func TestParseEnum(t *testing.T) {
	got, err := catalog.ParseEnum("letter", letters, " c ")
	require.NoError(t, err)
	assert.Equal(t, C, got)

	_, err = catalog.ParseEnum("letter", letters, "")
	var pe *catalog.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{"A", "B", "C", "D"}, pe.Valid)
}
