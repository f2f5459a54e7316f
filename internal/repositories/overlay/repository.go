// Package overlay stores the mutable per-identity annotations layered over
// the catalog, keyed by the (owner, item) pair.
package overlay

import (
	"context"

	"gameshelf/internal/models"
)

// Repository owns all overlay records. At most one record exists per
// (owner, item) pair; Put replaces any previous record for its pair.
// Delete of an absent pair is a no-op.
type Repository interface {
	Get(ctx context.Context, ownerID, itemID int64) (*models.OverlayRecord, error)
	Put(ctx context.Context, rec models.OverlayRecord) error
	Delete(ctx context.Context, ownerID, itemID int64) error
	QueryByOwner(ctx context.Context, ownerID int64) ([]models.OverlayRecord, error)

	// Export and Import move the full record set in and out of a snapshot.
	// Import replaces all existing records.
	Export(ctx context.Context) ([]models.OverlayRecord, error)
	Import(ctx context.Context, recs []models.OverlayRecord) error
}
