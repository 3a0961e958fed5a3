package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on every Open; statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		gender TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		matriculation_number TEXT NOT NULL DEFAULT '',
		previous_studies TEXT NOT NULL DEFAULT '',
		semester TEXT NOT NULL DEFAULT '',
		target_program TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		source_key TEXT NOT NULL,
		target_id TEXT NOT NULL,
		target_name TEXT NOT NULL,
		grade TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS records_position ON records (position)`,
	`CREATE TABLE IF NOT EXISTS generation_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		student_name TEXT NOT NULL,
		matriculation_number TEXT NOT NULL,
		template_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		active_count INTEGER NOT NULL,
		rows_matched INTEGER NOT NULL,
		rows_removed INTEGER NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
