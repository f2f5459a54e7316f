package storage

import (
	"context"
	"fmt"

	"gameshelf/internal/logging"
)

// Backend names accepted by NewGateway.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// NewGateway builds the snapshot gateway for the selected backend. The file
// backend uses path, the sqlite backend uses dsn, the memory backend needs
// neither.
func NewGateway(ctx context.Context, backend, path, dsn string, log logging.Logger) (Gateway, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryGateway(), nil
	case BackendFile:
		return NewFileGateway(path, log), nil
	case BackendSQLite:
		return OpenSQLiteGateway(ctx, dsn, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
