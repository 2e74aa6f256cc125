package testutil

import (
	"database/sql"
	"testing"

	"github.com/nocturne-journal/nocturne/internal/db"
	"github.com/nocturne-journal/nocturne/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestRepos wires SQLite entry and goal repositories over one test database.
func NewTestRepos(t *testing.T) (*sql.DB, *repository.SQLiteEntryRepo, *repository.SQLiteGoalRepo) {
	t.Helper()
	database := NewTestDB(t)
	return database,
		repository.NewSQLiteEntryRepo(database),
		repository.NewSQLiteGoalRepo(database, NewTestUoW(database))
}
