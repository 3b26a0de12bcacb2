// Package database handles database connections, the rule_documents table and
// schema inspection.
//
// Connect opens MySQL or SQLite through GORM depending on Config.Driver. The
// rule_documents table stores one rules document per row, keyed by resource
// name, and backs the database catalog source. GetTableColumns and
// MissingColumns let the integrity feature verify the table shape.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	doc, err := database.GetDocument(ctx, db, "realms.json")
package database
