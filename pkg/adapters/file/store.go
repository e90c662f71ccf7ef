// Package file implements ports.SnapshotStore on the local filesystem.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/silo/pkg/domain"
)

// Store persists each collection as a single JSON file under a base
// directory. Writes are atomic: the snapshot is written to a temp file in
// the same directory, fsynced, and renamed over the destination, so a crash
// mid-save never leaves a truncated snapshot behind.
type Store struct {
	BasePath string
}

// New creates a Store rooted at basePath.
// If basePath is empty, it defaults to ".silo".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = ".silo"
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.BasePath, collection+".json")
}

// Save writes the snapshot to <BasePath>/<collection>.json atomically.
func (s *Store) Save(ctx context.Context, collection string, snap domain.Snapshot) error {
	if collection == "" {
		return fmt.Errorf("collection cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Temp file must live in the same directory: rename is only atomic
	// within a filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+collection+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Close before rename (rename of an open file fails on Windows).
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(collection)

	// On Windows os.Rename fails if the destination exists; remove first.
	// The delete+rename window is acceptable compared to a partial write.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing snapshot for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to snapshot: %w", err)
	}

	return nil
}

// Load reads the snapshot for a collection.
func (s *Store) Load(ctx context.Context, collection string) (domain.Snapshot, error) {
	if collection == "" {
		return domain.Snapshot{}, fmt.Errorf("collection cannot be empty")
	}

	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return snap, nil
}

// Remove deletes the snapshot file for a collection. Used by the CLI;
// removing an absent snapshot is not an error.
func (s *Store) Remove(ctx context.Context, collection string) error {
	if collection == "" {
		return fmt.Errorf("collection cannot be empty")
	}

	err := os.Remove(s.path(collection))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot file: %w", err)
	}
	return nil
}
