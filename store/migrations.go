package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema contains the DDL for all tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS processes (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		pid        TEXT    NOT NULL,
		arrival    INTEGER NOT NULL CHECK (arrival >= 0),
		burst      INTEGER NOT NULL CHECK (burst > 0),
		created_at TEXT    NOT NULL
	)`,
}

// migrate applies the schema inside a single transaction.
func migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return tx.Commit()
}
