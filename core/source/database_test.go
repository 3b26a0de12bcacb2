package source_test

import (
	"context"
	"testing"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/core/database"
	"github.com/southpawriter02/rune-rust-sub041/core/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabase_Read(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	ctx := context.Background()
	require.NoError(t, database.PutDocument(ctx, db, database.RuleDocument{Name: "realms.json", Version: "1.0.0", Body: `{"realms": []}`}))

	src := source.NewDatabase(db)

	b, err := src.Read(ctx, "realms.json")
	require.NoError(t, err)
	assert.Equal(t, `{"realms": []}`, string(b))

	_, err = src.Read(ctx, "lineages.json")
	assert.ErrorIs(t, err, catalog.ErrResourceNotFound)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      source.Config
		deps     source.Deps
		describe string
		wantErr  string
	}{
		{"Default", source.Config{}, source.Deps{}, "file:.", ""},
		{"Embedded", source.Config{Source: source.KindEmbedded}, source.Deps{}, "file:.", ""},
		{"File", source.Config{Source: source.KindFile, Dir: "/etc/rules"}, source.Deps{}, "file:/etc/rules", ""},
		{"StorageWithoutClient", source.Config{Source: source.KindStorage}, source.Deps{}, "", "needs a storage client"},
		{"DatabaseWithoutDB", source.Config{Source: source.KindDatabase}, source.Deps{}, "", "needs a database connection"},
		{"Unknown", source.Config{Source: "ftp"}, source.Deps{}, "", `unknown catalog source "ftp"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := source.New(tt.cfg, tt.deps)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, src)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.describe, src.Describe())
		})
	}
}
