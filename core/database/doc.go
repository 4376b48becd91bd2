// Package database handles database connections.
//
// It wraps GORM to open MySQL, PostgreSQL or SQLite connections from the
// application's configuration. The same connection serves the compared
// tables, the rule table, the result table and SQL sample datasets.
//
// # Connect
//
// Connect builds the driver DSN, opens the connection with GORM logging
// silenced and verifies it with a ping bounded by TimeoutSeconds.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
