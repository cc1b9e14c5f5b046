// Package store persists scenario snapshots as a single JSON document and
// handles date-stamped exports and user-supplied imports.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/owengrv/running-the-numbers/internal/scenario"
	"github.com/owengrv/running-the-numbers/pkg/constants"
	"go.uber.org/zap"
)

// Store reads and writes the persisted snapshot document.
type Store struct {
	path   string
	logger *zap.Logger
}

// New creates a Store backed by the given file path.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Load reads the persisted snapshot. A missing or malformed document is not
// an error: the caller falls through to the next source (share link, then
// built-in defaults), so both cases return a nil snapshot.
func (s *Store) Load() *scenario.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read state file",
				zap.String("op", "store.Load"),
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return nil
	}

	var snap scenario.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("ignoring malformed state file",
			zap.String("op", "store.Load"),
			zap.String("path", s.path),
			zap.Error(err),
		)
		return nil
	}
	return &snap
}

// Save writes the snapshot document, creating parent directories as needed.
func (s *Store) Save(snap scenario.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Export writes a human-pretty-printed snapshot to a date-stamped file in
// dir and returns the file path.
func Export(dir string, snap scenario.Snapshot, now time.Time) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", constants.ExportFilePrefix, now.Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// Import parses arbitrary user-supplied JSON into a snapshot. Invalid JSON
// is an error and must leave the caller's state untouched; applying the
// returned snapshot is the caller's decision.
func Import(r io.Reader) (*scenario.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import: %w", err)
	}

	var snap scenario.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid scenario file: %w", err)
	}
	return &snap, nil
}
