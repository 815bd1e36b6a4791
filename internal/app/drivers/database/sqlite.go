package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sisregip-service/internal/app/config"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens a SQLite database file with foreign keys and WAL enabled.
// ":memory:" is accepted for tests; a single connection keeps it shared.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := "file::memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func NewSQLiteDB(driverConfig *config.DriverConfig) *sql.DB {
	db, err := OpenSQLite(driverConfig.Database.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open sqlite database %s: %s", driverConfig.Database.SQLitePath, err.Error())
	}

	log.Printf("Successfully opened sqlite database at %s", driverConfig.Database.SQLitePath)

	return db
}
