package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a journal that lives only as long as the process.
const MemoryPath = ":memory:"

// Open opens or creates the SQLite database at path and brings its schema up
// to date. MemoryPath (or "") opens a private in-memory database. For file
// databases, parent directories are created if they don't exist.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = MemoryPath
	}

	if path != MemoryPath {
		// Create parent directories if they don't exist
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}

	// Open the database connection
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
