package registry_test

import (
	"sync"
	"testing"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/core/source"
	"github.com/southpawriter02/rune-rust-sub041/data"
	"github.com/southpawriter02/rune-rust-sub041/feature/lineage"
	"github.com/southpawriter02/rune-rust-sub041/feature/realm"
	"github.com/southpawriter02/rune-rust-sub041/feature/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func TestRegistry_WarmEmbedded(t *testing.T) {
	r := registry.New(source.NewEmbedded(), zap.NewNop())
	assert.Equal(t, []string{"attributes", "archetypes", "backgrounds", "lineages", "specializations", "realms"}, r.Families())

	for _, st := range r.Statuses() {
		assert.False(t, st.Ready, st.Family)
		assert.Zero(t, st.Loads, st.Family)
	}

	require.NoError(t, r.Warm())
	for _, st := range r.Statuses() {
		assert.True(t, st.Ready, st.Family)
		assert.EqualValues(t, 1, st.Loads, st.Family)
		assert.False(t, st.LoadedAt.IsZero(), st.Family)
	}

	// Warm again is a no-op once loaded.
	require.NoError(t, r.Warm())
	assert.EqualValues(t, 1, r.Realms.Loads())
}

func TestRegistry_ConcurrentWarm(t *testing.T) {
	r := registry.New(source.NewEmbedded(), nil)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Warm())
		}()
	}
	wg.Wait()

	for _, st := range r.Statuses() {
		assert.EqualValues(t, 1, st.Loads, st.Family)
	}
}

func TestRegistry_WarmReportsEveryFailure(t *testing.T) {
	docs := make(map[string][]byte)
	for _, name := range registry.Resources {
		b, err := data.FS.ReadFile(name)
		require.NoError(t, err)
		docs[name] = b
	}
	delete(docs, lineage.Resource)
	docs[realm.Resource] = []byte(`{"realms": [`)

	r := registry.New(catalog.NewMemorySource(docs), nil)
	err := r.Warm()
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], catalog.ErrResourceNotFound)
	assert.ErrorIs(t, errs[1], catalog.ErrMalformed)

	ready := map[string]bool{}
	for _, st := range r.Statuses() {
		ready[st.Family] = st.Ready
	}
	assert.True(t, ready["specializations"])
	assert.False(t, ready["lineages"])
	assert.False(t, ready["realms"])
}

func TestRegistry_Find(t *testing.T) {
	r := registry.New(source.NewEmbedded(), nil)

	got, ok, err := r.Find("Realms", "niflheim")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, realm.Niflheim, got.(realm.Realm).ID)

	got, ok, err = r.Find("lineages", "bog walker")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.(lineage.Lineage).Tainted)

	_, _, err = r.Find("realms", "Earth")
	var pe *catalog.ParseError
	assert.ErrorAs(t, err, &pe)

	_, _, err = r.Find("spells", "fireball")
	assert.ErrorContains(t, err, `unknown rules family "spells"`)

	l, ok := r.Loader("SPECIALIZATIONS")
	require.True(t, ok)
	assert.Equal(t, "specializations", l.Family())
}
