package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// whole list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The catalog index mirrors the reference JSON files for lookups. It holds
// no user data: selections and orders are never written here.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS textbooks (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		link_url TEXT,
		link_description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS lessons (
		textbook TEXT NOT NULL REFERENCES textbooks(name) ON DELETE CASCADE,
		name TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (textbook, name)
	)`,
	`CREATE TABLE IF NOT EXISTS passages (
		textbook TEXT NOT NULL,
		lesson TEXT NOT NULL,
		number TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (textbook, lesson, number),
		FOREIGN KEY (textbook, lesson) REFERENCES lessons(textbook, name) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS mock_exams (
		name TEXT PRIMARY KEY,
		grade TEXT NOT NULL,
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS catalog_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_lessons_textbook ON lessons(textbook, position)`,
	`CREATE INDEX IF NOT EXISTS idx_passages_lesson ON passages(textbook, lesson, position)`,
	`CREATE INDEX IF NOT EXISTS idx_mock_exams_grade ON mock_exams(grade, position)`,
}
