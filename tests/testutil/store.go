package testutil

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/nhle/todobar/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewMemFileStore returns a FileStore on an in-memory filesystem together
// with that filesystem, so tests can inspect what was written.
func NewMemFileStore(t *testing.T, path string) (*store.FileStore, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	return store.NewFileStore(fs, path), fs
}
