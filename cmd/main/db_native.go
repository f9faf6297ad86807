//go:build !cgo_sqlite

package main

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// sqliteDriver is the database/sql driver name registered by modernc.org/sqlite.
const sqliteDriver = "sqlite"

// openDB opens a SQLite database through the pure-Go driver.
func openDB(ctx context.Context, dataSource string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriver, dataSource)
	if err != nil {
		return nil, err
	}
	return checkDB(ctx, db)
}
