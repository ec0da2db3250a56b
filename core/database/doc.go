// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections from
// the application's configuration. The database is optional: it stores run history
// and serves db:// record sources.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table. Table record sources use it to fail
// fast with a clear error when a table does not exist.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "customers")
package database
