package checks

import (
	"testing"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/data"
	"github.com/southpawriter02/rune-rust-sub041/feature/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultDocs(t *testing.T) map[string][]byte {
	t.Helper()
	docs := make(map[string][]byte)
	for _, name := range registry.Resources {
		b, err := data.FS.ReadFile(name)
		require.NoError(t, err)
		docs[name] = b
	}
	return docs
}

func TestCheckCatalogs(t *testing.T) {
	docs := defaultDocs(t)
	docs["attributes.json"] = []byte(`{"attributes": [{"id": "Might"}]}`)
	delete(docs, "realms.json")

	reports := CheckCatalogs(registry.New(catalog.NewMemorySource(docs), nil).Loaders())
	require.Len(t, reports, 6)
	assert.False(t, Healthy(reports))

	byFamily := make(map[string]CatalogReport)
	for _, r := range reports {
		byFamily[r.Family] = r
	}

	attrs := byFamily["attributes"]
	assert.Equal(t, "error", attrs.Status)
	assert.Equal(t, catalog.ErrSchemaViolation.Error(), attrs.Kind)
	require.Len(t, attrs.Violations, 1)
	assert.Contains(t, attrs.Violations[0], "expected exactly 5 records, found 1")

	realms := byFamily["realms"]
	assert.Equal(t, catalog.ErrResourceNotFound.Error(), realms.Kind)
	assert.Empty(t, realms.Violations)

	assert.True(t, byFamily["specializations"].OK())
	assert.Equal(t, "specializations.json", byFamily["specializations"].Resource)
}

func TestCheckCatalogs_AllHealthy(t *testing.T) {
	reports := CheckCatalogs(registry.New(catalog.NewMemorySource(defaultDocs(t)), nil).Loaders())
	assert.True(t, Healthy(reports))
	for _, r := range reports {
		assert.Empty(t, r.Error, r.Family)
	}
}
