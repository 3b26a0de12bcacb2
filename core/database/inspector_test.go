package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_docs (id INTEGER PRIMARY KEY, name TEXT, body TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_docs")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["body"])

	// PRAGMA table_info returns no rows for a table that does not exist.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	t.Run("Migrated", func(t *testing.T) {
		require.NoError(t, Migrate(db))
		missing, err := MissingColumns(db, "rule_documents", RuleDocumentColumns)
		require.NoError(t, err)
		assert.Empty(t, missing)
		assert.NotNil(t, missing)
	})

	t.Run("Partial", func(t *testing.T) {
		require.NoError(t, db.Exec("CREATE TABLE legacy_docs (name TEXT, BODY TEXT)").Error)
		missing, err := MissingColumns(db, "legacy_docs", RuleDocumentColumns)
		require.NoError(t, err)
		assert.Equal(t, []string{"version", "updated_at"}, missing)
	})

	t.Run("Absent", func(t *testing.T) {
		missing, err := MissingColumns(db, "nope", RuleDocumentColumns)
		require.NoError(t, err)
		assert.Equal(t, RuleDocumentColumns, missing)
	})
}
