// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection for the configured driver.
// MySQL is the production driver; SQLite (including in-memory databases) is
// supported for local use and tests. Connection pooling limits and an initial
// ping are applied uniformly.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
