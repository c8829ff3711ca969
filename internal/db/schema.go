package db

import (
	"context"
	"fmt"
)

// Schema statements are idempotent; EnsureSchema may run on every startup.
var schemaStmts = []string{
	`CREATE TABLE IF NOT EXISTS estimates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_name TEXT NOT NULL,
		project_name TEXT NOT NULL,
		total_amount REAL NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS estimate_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		estimate_id INTEGER NOT NULL,
		description TEXT NOT NULL,
		quantity REAL NOT NULL,
		unit_price REAL NOT NULL,
		amount REAL NOT NULL,
		FOREIGN KEY (estimate_id) REFERENCES estimates(id) ON DELETE CASCADE
	)`,
}

// EnsureSchema creates the estimates and estimate_items tables if they do not
// exist yet. Calling it again once the tables exist is a no-op.
func EnsureSchema(ctx context.Context, d *DB) error {
	for _, stmt := range schemaStmts {
		if _, err := d.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
