package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SnapshotInfo describes one saved batch without its payload.
type SnapshotInfo struct {
	ID        string    `db:"id"`
	TaskCount int       `db:"task_count"`
	CreatedAt time.Time `db:"created_at"`
}

// SQLiteStore keeps every saved batch as a snapshot row in a local SQLite
// database. The newest snapshot is the current batch.
type SQLiteStore struct {
	db   *sqlx.DB
	keep int
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SetKeep bounds how many snapshots SaveTasks retains. Zero or less keeps
// all of them.
func (s *SQLiteStore) SetKeep(n int) {
	s.keep = n
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the highest applied migration.
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.GetContext(ctx, &version, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// LoadTasks returns the newest snapshot, or "[]" when there is none.
func (s *SQLiteStore) LoadTasks(ctx context.Context) ([]byte, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		"SELECT payload FROM snapshots ORDER BY seq DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return emptyBatch, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest snapshot: %w", err)
	}
	return []byte(payload), nil
}

// SaveTasks appends data as a new snapshot and prunes old ones.
func (s *SQLiteStore) SaveTasks(ctx context.Context, data []byte) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, payload, task_count, created_at)
		VALUES (?, ?, ?, ?)`,
		id, string(data), countRecords(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot %s: %w", id, err)
	}

	if s.keep > 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM snapshots WHERE seq NOT IN (
				SELECT seq FROM snapshots ORDER BY seq DESC LIMIT ?
			)`, s.keep)
		if err != nil {
			return fmt.Errorf("pruning snapshots: %w", err)
		}
	}

	return tx.Commit()
}

// Snapshots lists saved batches, newest first. limit <= 0 lists all.
func (s *SQLiteStore) Snapshots(ctx context.Context, limit int) ([]SnapshotInfo, error) {
	query := "SELECT id, task_count, created_at FROM snapshots ORDER BY seq DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	var infos []SnapshotInfo
	if err := s.db.SelectContext(ctx, &infos, query); err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	return infos, nil
}

// Snapshot returns the payload saved under id.
func (s *SQLiteStore) Snapshot(ctx context.Context, id string) ([]byte, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload, "SELECT payload FROM snapshots WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting snapshot %s: %w", id, err)
	}
	return []byte(payload), nil
}

// countRecords reports the number of top-level array elements in data, or
// zero when data is not an array.
func countRecords(data []byte) int {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return 0
	}
	return len(records)
}
