package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"gameshelf/internal/logging"
	"gameshelf/internal/models"
	"gameshelf/internal/storage/migrations"
)

// SQLiteGateway keeps the serialized snapshot in a single-row sqlite table.
// The whole document is replaced on every save.
type SQLiteGateway struct {
	db  *sql.DB
	log logging.Logger
}

// OpenSQLiteGateway opens (or creates) the sqlite database at dsn and runs
// the embedded schema migrations.
func OpenSQLiteGateway(ctx context.Context, dsn string, log logging.Logger) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteGateway{db: db, log: log}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func (g *SQLiteGateway) Load(ctx context.Context) (*models.Snapshot, error) {
	var document []byte

	err := g.db.QueryRowContext(ctx, `SELECT document FROM snapshots WHERE id = 1`).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		g.log.Warn(ctx, "snapshot row unreadable, starting empty", "error", err)
		return nil, nil
	}

	snap := &models.Snapshot{}
	if err := json.Unmarshal(document, snap); err != nil {
		g.log.Warn(ctx, "snapshot document corrupt, starting empty", "error", err)
		return nil, nil
	}

	return snap, nil
}

func (g *SQLiteGateway) Save(ctx context.Context, snap *models.Snapshot) error {
	document, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	query := `INSERT INTO snapshots (id, revision, saved_at, document)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET revision = excluded.revision,
				saved_at = excluded.saved_at,
				document = excluded.document
	`
	_, err = g.db.ExecContext(ctx, query, snap.Revision, snap.SavedAt.UTC().Format(time.RFC3339Nano), document)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

// Close releases the underlying database handle.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}
