package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gameshelf/internal/logging"
	"gameshelf/internal/models"
)

// FileGateway stores the snapshot as a single JSON document. Saves write to
// a temporary file and rename it into place, so a crash mid-write leaves
// either the old or the new snapshot, never a torn one.
type FileGateway struct {
	path string
	log  logging.Logger
}

func NewFileGateway(path string, log logging.Logger) *FileGateway {
	return &FileGateway{path: path, log: log}
}

func (g *FileGateway) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		g.log.Warn(ctx, "snapshot file unreadable, starting empty", "path", g.path, "error", err)
		return nil, nil
	}

	snap := &models.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		g.log.Warn(ctx, "snapshot file corrupt, starting empty", "path", g.path, "error", err)
		return nil, nil
	}

	return snap, nil
}

func (g *FileGateway) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	if dir := filepath.Dir(g.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create snapshot dir: %w", err)
		}
	}

	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, g.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}
