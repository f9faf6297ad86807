//go:build cgo_sqlite

package main

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteDriver is the database/sql driver name registered by mattn/go-sqlite3.
const sqliteDriver = "sqlite3"

// openDB opens a SQLite database through the cgo driver.
func openDB(ctx context.Context, dataSource string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriver, dataSource)
	if err != nil {
		return nil, err
	}
	return checkDB(ctx, db)
}
