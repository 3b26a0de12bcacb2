package archetype_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/core/source"
	"github.com/southpawriter02/rune-rust-sub041/data"
	"github.com/southpawriter02/rune-rust-sub041/feature/archetype"
	"github.com/southpawriter02/rune-rust-sub041/feature/rules"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func shipped(t *testing.T) []map[string]any {
	t.Helper()
	b, err := data.FS.ReadFile(archetype.Resource)
	require.NoError(t, err)
	var doc struct {
		Archetypes []map[string]any `json:"archetypes"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))
	return doc.Archetypes
}

func withRecords(t *testing.T, records []map[string]any, logger *zap.Logger) *archetype.Catalog {
	t.Helper()
	b, err := json.Marshal(map[string]any{"version": "1.0.0", "archetypes": records})
	require.NoError(t, err)
	return archetype.NewCatalog(catalog.NewMemorySource(map[string][]byte{archetype.Resource: b}), logger)
}

func TestCatalog_Embedded(t *testing.T) {
	c := archetype.NewCatalog(source.NewEmbedded(), zap.NewNop())

	all, err := c.All()
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, a := range all {
		assert.Equal(t, a.ID.PrimaryResource(), a.PrimaryResource)
		assert.Len(t, a.StartingAbilities, archetype.StartingAbilityCount)
		assert.NotNil(t, a.ResourceBonuses)
	}

	casters, err := c.Filter(archetype.FilterCasters)
	require.NoError(t, err)
	require.Len(t, casters, 1)
	assert.Equal(t, rules.Mystic, casters[0].ID)

	stamina, err := c.ByPrimaryResource(rules.Stamina)
	require.NoError(t, err)
	assert.Len(t, stamina, 3)

	rage, err := c.ByPrimaryResource(rules.Rage)
	require.NoError(t, err)
	assert.NotNil(t, rage)
	assert.Empty(t, rage)

	adept, _, err := c.Get(rules.Adept)
	require.NoError(t, err)
	assert.Empty(t, adept.ResourceBonuses)
	require.Len(t, adept.StartingEquipment, 3)
	assert.Equal(t, archetype.None, adept.StartingEquipment[2].Slot)

	owner, ability, ok, err := c.FindStartingAbility("Mystic_Aether_Bolt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rules.Mystic, owner.ID)
	assert.Equal(t, rules.Active, ability.Type)
}

func TestCatalog_Violations(t *testing.T) {
	records := shipped(t)
	// Warrior, Skirmisher and Mystic, in document order.
	records[0]["primaryResource"] = "Aether"
	records[1]["startingAbilities"] = records[1]["startingAbilities"].([]any)[:2]
	records[2]["startingAbilities"].([]any)[0].(map[string]any)["id"] = "warrior_brace"

	err := withRecords(t, records, nil).Warm()
	require.ErrorIs(t, err, catalog.ErrSchemaViolation)
	var le *catalog.LoadError
	require.ErrorAs(t, err, &le)
	require.Len(t, le.Violations, 3)

	assert.Equal(t, catalog.RuleConsistency, le.Violations[0].Rule)
	assert.Contains(t, le.Violations[0].Message, `declared "Aether" but Warrior implies "Stamina"`)
	assert.Equal(t, "needs exactly 3 entries, found 2", le.Violations[1].Message)
	assert.Equal(t, catalog.RuleUniqueness, le.Violations[2].Rule)
	assert.Equal(t, "Mystic", le.Violations[2].Record)
}

func TestCatalog_UnknownSlotDegrades(t *testing.T) {
	records := shipped(t)
	records[0]["startingEquipment"].([]any)[0].(map[string]any)["slot"] = "Tail"
	core, logs := observer.New(zapcore.WarnLevel)

	warrior, ok, err := withRecords(t, records, zap.New(core)).Get(rules.Warrior)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, archetype.None, warrior.StartingEquipment[0].Slot)
	assert.Equal(t, "Bearded axe", warrior.StartingEquipment[0].Item)

	entries := logs.FilterField(zap.String("field", "startingEquipment[0].slot")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Warrior", entries[0].ContextMap()["record"])
}

func TestFeature_Routes(t *testing.T) {
	app := fiber.New()
	require.NoError(t, archetype.NewFeature(archetype.NewCatalog(source.NewEmbedded(), nil), zap.NewNop()).Load(app))

	for path, want := range map[string]int{
		"/catalogs/archetypes":                            fiber.StatusOK,
		"/catalogs/archetypes/Adept":                      fiber.StatusOK,
		"/catalogs/archetypes/resource/aether":            fiber.StatusOK,
		"/catalogs/archetypes/filter/martial":             fiber.StatusOK,
		"/catalogs/archetypes/abilities/adept_first_aid":  fiber.StatusOK,
		"/catalogs/archetypes/abilities/berserkr_rampage": fiber.StatusNotFound,
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
