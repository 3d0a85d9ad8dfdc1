package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// SQLite works best with a single writer connection
	db.SetMaxOpenConns(1)
	return db, nil
}
