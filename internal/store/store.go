package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/nhle/todobar/internal/model"
)

// ErrSnapshotNotFound is returned when a snapshot id is unknown.
var ErrSnapshotNotFound = errors.New("store: snapshot not found")

// emptyBatch is what LoadTasks returns before anything has been saved.
var emptyBatch = []byte("[]")

// Store persists the serialized task batch. Implementations treat the
// payload as opaque text.
type Store interface {
	// LoadTasks returns the most recently saved batch, or "[]".
	LoadTasks(ctx context.Context) ([]byte, error)

	// SaveTasks replaces the stored batch with data.
	SaveTasks(ctx context.Context, data []byte) error

	Close() error
}

// Open returns the store selected by cfg.Backend.
func Open(cfg model.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case model.BackendFile, "":
		return NewFileStore(afero.NewOsFs(), cfg.Path), nil
	case model.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		s, err := NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		s.SetKeep(cfg.KeepSnapshots)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
