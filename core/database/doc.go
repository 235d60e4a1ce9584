// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration. SQLite is supported
// for local runs and in-memory tests.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. The tracker
// never creates or migrates the users table; it expects the tournament registration
// system to own the schema.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema. VerifyColumns is run
// at startup to confirm the users table carries every column the tracker reads
// or writes, failing fast when pointed at the wrong database.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.VerifyColumns(db, "users", "osu_id", "badges")
package database
