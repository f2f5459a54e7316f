// Package overlay implements the mutable per-identity annotation store
// layered over the catalog: status and rating per (owner, item) pair, with
// write-through persistence after every successful mutation.
package overlay

import (
	"context"
	"errors"
	"fmt"

	"gameshelf/internal/catalog"
	"gameshelf/internal/common"
	"gameshelf/internal/logging"
	"gameshelf/internal/models"
	overlayrepo "gameshelf/internal/repositories/overlay"
	"gameshelf/internal/storage"
	"gameshelf/internal/timex"
)

// IdentityProvider yields the identity on whose behalf a mutation runs.
// Satisfied by *session.Service.
type IdentityProvider interface {
	CurrentIdentity() *models.Identity
}

// Update carries the optional fields of an upsert. Nil fields keep their
// prior value (or the none/0 defaults when the record is being created).
type Update struct {
	Status *models.Status
	Rating *float64
}

// Store owns all overlay records. Mutation is strictly self-service: the
// active identity must equal the record owner, with no administrative
// override.
type Store struct {
	repo      overlayrepo.Repository
	identity  IdentityProvider
	catalog   *catalog.Catalog
	persister storage.Persister
	clock     timex.Clock
	log       logging.Logger
}

func NewStore(repo overlayrepo.Repository, identity IdentityProvider, cat *catalog.Catalog, persister storage.Persister, clock timex.Clock, log logging.Logger) *Store {
	return &Store{
		repo:      repo,
		identity:  identity,
		catalog:   cat,
		persister: persister,
		clock:     clock,
		log:       log,
	}
}

// Upsert applies the given fields to the (ownerID, itemID) record, creating
// it if absent. Setting status to none removes the record: "none" means "no
// row", not a row holding the value none. A record that would end up as
// none/unrated is likewise not stored.
func (s *Store) Upsert(ctx context.Context, ownerID, itemID int64, update Update) error {
	current := s.identity.CurrentIdentity()
	if current == nil || current.ID != ownerID {
		return common.ErrorUnauthorized
	}

	if update.Status != nil && !update.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", common.ErrorValidation, *update.Status)
	}
	if update.Rating != nil && (*update.Rating < models.RatingMin || *update.Rating > models.RatingMax) {
		return fmt.Errorf("%w: rating %v outside [%v, %v]", common.ErrorValidation, *update.Rating, models.RatingMin, models.RatingMax)
	}
	if _, ok := s.catalog.ByID(itemID); !ok {
		return fmt.Errorf("%w: catalog item %d", common.ErrorNotFound, itemID)
	}

	rec := models.OverlayRecord{
		OwnerID: ownerID,
		ItemID:  itemID,
		Status:  models.StatusNone,
	}
	if existing, err := s.repo.Get(ctx, ownerID, itemID); err == nil {
		rec = *existing
	} else if !errors.Is(err, common.ErrorNotFound) {
		return common.ErrorInternal
	}

	if update.Status != nil {
		rec.Status = *update.Status
	}
	if update.Rating != nil {
		rec.Rating = *update.Rating
	}
	rec.UpdatedAt = s.clock.Now().UTC()

	// An explicit status=none drops the record regardless of rating; a
	// record that merely defaulted to none survives only while it carries a
	// rating.
	remove := rec.Status == models.StatusNone && (update.Status != nil || rec.Rating == 0)

	if remove {
		if err := s.repo.Delete(ctx, ownerID, itemID); err != nil {
			return common.ErrorInternal
		}
	} else {
		if err := s.repo.Put(ctx, rec); err != nil {
			return common.ErrorInternal
		}
	}

	if err := s.persister.Persist(ctx); err != nil {
		return fmt.Errorf("failed to persist overlay mutation: %w", err)
	}

	s.log.Info(ctx, "overlay updated",
		"owner", ownerID, "item", itemID, "status", rec.Status, "rating", rec.Rating, "removed", remove)
	return nil
}

// Query returns all records for one owner, sorted by item id so the order
// is stable within a process run.
func (s *Store) Query(ctx context.Context, ownerID int64) ([]models.OverlayRecord, error) {
	return s.repo.QueryByOwner(ctx, ownerID)
}
