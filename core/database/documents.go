package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RuleDocument is one stored rules document, addressed by resource name.
type RuleDocument struct {
	Name      string `gorm:"primaryKey;size:128"`
	Version   string `gorm:"size:32"`
	Body      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name.
func (RuleDocument) TableName() string {
	return "rule_documents"
}

// RuleDocumentColumns lists the columns the document source reads.
var RuleDocumentColumns = []string{"name", "version", "body", "updated_at"}

// ErrDocumentNotFound is returned when no row matches the requested name.
var ErrDocumentNotFound = errors.New("rule document not found")

// Migrate creates or updates the rule_documents table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&RuleDocument{}); err != nil {
		return fmt.Errorf("failed to migrate rule_documents: %w", err)
	}
	return nil
}

// GetDocument loads the document stored under name.
func GetDocument(ctx context.Context, db *gorm.DB, name string) (*RuleDocument, error) {
	var doc RuleDocument
	err := db.WithContext(ctx).Where("name = ?", name).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rule document %s: %w", name, err)
	}
	return &doc, nil
}

// PutDocument inserts or replaces the document stored under doc.Name.
func PutDocument(ctx context.Context, db *gorm.DB, doc RuleDocument) error {
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "body", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to store rule document %s: %w", doc.Name, err)
	}
	return nil
}
