package overlay

import (
	"context"
	"sort"
	"sync"

	"gameshelf/internal/common"
	"gameshelf/internal/models"
)

type pairKey struct {
	ownerID int64
	itemID  int64
}

// InMemoryRepository keeps overlay records in a map guarded by a mutex.
// Query results are sorted by item id so repeated reads within one process
// run see a stable order.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[pairKey]models.OverlayRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[pairKey]models.OverlayRecord)}
}

func (r *InMemoryRepository) Get(ctx context.Context, ownerID, itemID int64) (*models.OverlayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[pairKey{ownerID, itemID}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rec, nil
}

func (r *InMemoryRepository) Put(ctx context.Context, rec models.OverlayRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[pairKey{rec.OwnerID, rec.ItemID}] = rec
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, ownerID, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, pairKey{ownerID, itemID})
	return nil
}

func (r *InMemoryRepository) QueryByOwner(ctx context.Context, ownerID int64) ([]models.OverlayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.OverlayRecord
	for key, rec := range r.records {
		if key.ownerID == ownerID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })

	return out, nil
}

func (r *InMemoryRepository) Export(ctx context.Context) ([]models.OverlayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.OverlayRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OwnerID != out[j].OwnerID {
			return out[i].OwnerID < out[j].OwnerID
		}
		return out[i].ItemID < out[j].ItemID
	})

	return out, nil
}

func (r *InMemoryRepository) Import(ctx context.Context, recs []models.OverlayRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[pairKey]models.OverlayRecord, len(recs))
	for _, rec := range recs {
		r.records[pairKey{rec.OwnerID, rec.ItemID}] = rec
	}

	return nil
}
