package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestDocuments_RoundTrip(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	ctx := context.Background()

	_, err = GetDocument(ctx, db, "realms.json")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	require.NoError(t, PutDocument(ctx, db, RuleDocument{Name: "realms.json", Version: "1.0.0", Body: `{"realms": []}`}))
	doc, err := GetDocument(ctx, db, "realms.json")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Version)
	assert.Equal(t, `{"realms": []}`, doc.Body)

	require.NoError(t, PutDocument(ctx, db, RuleDocument{Name: "realms.json", Version: "1.1.0", Body: `{"realms": [1]}`}))
	doc, err = GetDocument(ctx, db, "realms.json")
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", doc.Version)
	assert.Equal(t, `{"realms": [1]}`, doc.Body)

	var count int64
	require.NoError(t, db.Model(&RuleDocument{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetDocument_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `rule_documents`").WillReturnError(errors.New("connection lost"))

	_, err = GetDocument(context.Background(), db, "realms.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDocumentNotFound)
	assert.Contains(t, err.Error(), "connection lost")
	assert.NoError(t, mock.ExpectationsWereMet())
}
