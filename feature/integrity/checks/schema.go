package checks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/southpawriter02/rune-rust-sub041/core/catalog"
	"github.com/southpawriter02/rune-rust-sub041/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SchemaReport is the state of the rules document table.
type SchemaReport struct {
	Table            string   `json:"table"`
	Matched          bool     `json:"matched"`
	MissingColumns   []string `json:"missing_columns"`
	MissingDocuments []string `json:"missing_documents"`
	Errors           []string `json:"errors"`
}

// CheckSchema verifies that the rules document table has every column the
// database source reads and a row for each of names.
func CheckSchema(ctx context.Context, db *gorm.DB, names []string) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	table := database.RuleDocument{}.TableName()
	report := &SchemaReport{
		Table:            table,
		Matched:          true,
		MissingDocuments: []string{},
		Errors:           []string{},
	}

	missing, err := database.MissingColumns(db, table, database.RuleDocumentColumns)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
		report.Matched = false
		return report, nil
	}
	report.MissingColumns = missing
	if len(missing) > 0 {
		// Rows cannot be read without the columns.
		report.Matched = false
		return report, nil
	}

	for _, name := range names {
		_, err := database.GetDocument(ctx, db, name)
		switch {
		case errors.Is(err, database.ErrDocumentNotFound):
			report.MissingDocuments = append(report.MissingDocuments, name)
			report.Matched = false
		case err != nil:
			report.Errors = append(report.Errors, err.Error())
			report.Matched = false
		}
	}
	return report, nil
}

// FixSchema migrates the rules document table and stores the default body
// of every missing document.
func FixSchema(ctx context.Context, db *gorm.DB, logger *zap.Logger, missing []string, read ReadFunc) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	for _, name := range missing {
		body, err := read(name)
		if err != nil {
			return fmt.Errorf("failed to read default document %s: %w", name, err)
		}
		doc, err := catalog.Decode(name, body)
		if err != nil {
			return err
		}
		row := database.RuleDocument{Name: name, Version: doc.Version, Body: string(body), UpdatedAt: time.Now()}
		if err := database.PutDocument(ctx, db, row); err != nil {
			return err
		}
		logger.Info("Stored rules document", zap.String("name", name), zap.String("version", doc.Version))
	}
	return nil
}
