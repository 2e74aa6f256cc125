package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS entries (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		type            TEXT NOT NULL CHECK(type IN ('dream','journal','note')),
		text            TEXT NOT NULL,
		date_string     TEXT NOT NULL,
		timestamp       TEXT NOT NULL,
		mood            TEXT NOT NULL DEFAULT '',
		ai_result       TEXT,
		ai_processed_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_entries_user_type_ts ON entries(user_id, type, timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_user_type_date ON entries(user_id, type, date_string)`,

	// Entry type is immutable once written.
	`CREATE TRIGGER IF NOT EXISTS trg_entries_type_immutable
		BEFORE UPDATE OF type ON entries
		WHEN NEW.type <> OLD.type
		BEGIN
			SELECT RAISE(ABORT, 'entry type is immutable');
		END`,

	`CREATE TABLE IF NOT EXISTS goals (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		text            TEXT NOT NULL,
		icon            TEXT NOT NULL DEFAULT '✨',
		why             TEXT NOT NULL DEFAULT '',
		source          TEXT NOT NULL CHECK(source IN ('ai','manual')),
		source_entry_id TEXT,
		completed       INTEGER NOT NULL DEFAULT 0,
		date_string     TEXT NOT NULL,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_goals_user_date_source ON goals(user_id, date_string, source)`,
}
