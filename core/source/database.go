package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/core/database"

	"gorm.io/gorm"
)

// Database reads documents from the rule_documents table.
type Database struct {
	db *gorm.DB
}

// NewDatabase creates a source backed by db.
func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) Read(ctx context.Context, name string) ([]byte, error) {
	doc, err := database.GetDocument(ctx, d.db, name)
	if errors.Is(err, database.ErrDocumentNotFound) {
		return nil, fmt.Errorf("%w: %v", catalog.ErrResourceNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Body), nil
}

// Describe names the source for status output.
func (d *Database) Describe() string {
	return "database:rule_documents"
}
