package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusched/sim"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *logrus.Entry
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// Every pooled connection to ":memory:" would get its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logrus.WithField("component", "store"),
	}, nil
}

// Open opens dbPath and applies migrations.
func Open(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	st, err := NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("migrate")
	return migrate(ctx, s.db)
}

func (s *SQLiteStore) AddProcess(ctx context.Context, p sim.Process) error {
	if err := sim.ValidateProcess(p); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"pid": p.ID, "arrival": p.Arrival, "burst": p.Burst}).Debug("insert process")

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO processes (pid, arrival, burst, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Arrival, p.Burst, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert process %q: %w", p.ID, err)
	}
	return nil
}

func (s *SQLiteStore) ListProcesses(ctx context.Context) ([]sim.Process, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pid, arrival, burst FROM processes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	defer rows.Close()

	procs := make([]sim.Process, 0)
	for rows.Next() {
		var p sim.Process
		if err := rows.Scan(&p.ID, &p.Arrival, &p.Burst); err != nil {
			return nil, fmt.Errorf("scan process: %w", err)
		}
		procs = append(procs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	return procs, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM processes`)
	if err != nil {
		return fmt.Errorf("clear processes: %w", err)
	}
	n, _ := res.RowsAffected()
	s.logger.WithField("removed", n).Info("cleared process list")
	return nil
}
