package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/core/database"
	"github.com/southpawriter02/rune-rust-sub041/core/source"
	"github.com/southpawriter02/rune-rust-sub041/core/storage"
	"github.com/southpawriter02/rune-rust-sub041/core/storage/mocks"
	"github.com/southpawriter02/rune-rust-sub041/feature/registry"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T, src catalog.Source, client storage.Client, db *gorm.DB) *fiber.App {
	t.Helper()
	app := fiber.New()
	feature := NewFeature(registry.New(src, nil), client, "rules", "rules/", db, zap.NewNop())
	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app
}

func decode(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}


func TestHandleCatalogCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		app := setupTestApp(t, source.NewEmbedded(), nil, nil)
		status, body := decode(t, app, "/integrity/catalogs")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "ok", body["status"])
		assert.Len(t, body["catalogs"], 6)
	})

	t.Run("Broken", func(t *testing.T) {
		app := setupTestApp(t, catalog.NewMemorySource(nil), nil, nil)
		status, body := decode(t, app, "/integrity/catalogs")
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "error", body["status"])
		first := body["catalogs"].([]any)[0].(map[string]any)
		assert.Equal(t, "attributes", first["family"])
		assert.Equal(t, catalog.ErrResourceNotFound.Error(), first["kind"])
	})
}

func TestHandleStorageCheck(t *testing.T) {
	t.Run("Not Configured", func(t *testing.T) {
		app := setupTestApp(t, source.NewEmbedded(), nil, nil)
		status, _ := decode(t, app, "/integrity/storage")
		assert.Equal(t, fiber.StatusNotImplemented, status)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rules").Return(true, nil)
		client.On("ListObjects", mock.Anything, "rules", mock.Anything).Return(mocks.Listing())
		app := setupTestApp(t, source.NewEmbedded(), client, nil)

		status, body := decode(t, app, "/integrity/storage")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "checked", body["status"])
		assert.Len(t, body["missing"], len(registry.Resources))
	})

	t.Run("Fix", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rules").Return(true, nil)
		client.On("ListObjects", mock.Anything, "rules", mock.Anything).Return(mocks.Listing())
		client.On("PutObject", mock.Anything, "rules", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
		app := setupTestApp(t, source.NewEmbedded(), client, nil)

		status, body := decode(t, app, "/integrity/storage?fix=true")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "fixed", body["status"])
		client.AssertCalled(t, "PutObject", mock.Anything, "rules", "rules/realms.json", mock.Anything, mock.Anything, mock.Anything)
		client.AssertNumberOfCalls(t, "PutObject", len(registry.Resources))
	})

	t.Run("Bucket Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rules").Return(false, assert.AnError)
		app := setupTestApp(t, source.NewEmbedded(), client, nil)

		status, _ := decode(t, app, "/integrity/storage")
		assert.Equal(t, fiber.StatusInternalServerError, status)
	})
}

func TestHandleDatabaseCheck(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	app := setupTestApp(t, source.NewEmbedded(), nil, db)

	status, body := decode(t, app, "/integrity/database")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["matched"])

	status, body = decode(t, app, "/integrity/database?fix=true")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "fixed", body["status"])

	status, body = decode(t, app, "/integrity/database")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["matched"])
}

func TestHandleIntegrityCheck(t *testing.T) {
	app := setupTestApp(t, source.NewEmbedded(), nil, nil)

	status, body := decode(t, app, "/integrity")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]any{"status": "skipped"}, body["storage"])
	assert.Equal(t, map[string]any{"status": "skipped"}, body["database"])
}

func TestHandleReconcile(t *testing.T) {
	t.Run("Not Configured", func(t *testing.T) {
		app := setupTestApp(t, source.NewEmbedded(), nil, nil)
		status, _ := decode(t, app, "/integrity/reconcile")
		assert.Equal(t, fiber.StatusNotImplemented, status)
	})

	t.Run("Restore Database", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		app := setupTestApp(t, source.NewEmbedded(), nil, db)

		status, body := decode(t, app, "/integrity/reconcile")
		assert.Equal(t, fiber.StatusOK, status)
		summary := body["summary"].(map[string]any)
		assert.Equal(t, float64(len(registry.Resources)), summary["missing_db"])
		assert.Equal(t, float64(0), body["executed"])

		// Planned but not confirmed.
		status, body = decode(t, app, "/integrity/reconcile?restore=true")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Len(t, body["actions"], len(registry.Resources))
		assert.Equal(t, float64(0), body["executed"])

		status, body = decode(t, app, "/integrity/reconcile?restore=true&confirm=true")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, float64(len(registry.Resources)), body["executed"])

		status, body = decode(t, app, "/integrity/reconcile/realms.json")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "present", body["database"])
		assert.Equal(t, "skipped", body["storage"])

		status, _ = decode(t, app, "/integrity/reconcile/unknown.json")
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}
