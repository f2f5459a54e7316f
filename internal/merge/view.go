// Package merge joins the immutable catalog with one identity's overlay
// records into the externally visible item list. The view is recomputed on
// every read; there is no cached join state to go stale.
package merge

import (
	"context"

	"gameshelf/internal/catalog"
	"gameshelf/internal/models"
	"gameshelf/internal/overlay"
)

// View produces merged item lists for any identity.
type View struct {
	catalog *catalog.Catalog
	overlay *overlay.Store
}

func NewView(cat *catalog.Catalog, store *overlay.Store) *View {
	return &View{catalog: cat, overlay: store}
}

// ForIdentity yields one MergedItem per catalog item, in catalog order.
// Items without an overlay record (and every item when identityID is nil)
// carry status none, rating 0 and no update time. Overlay records whose
// item is not in the catalog are silently excluded.
func (v *View) ForIdentity(ctx context.Context, identityID *int64) ([]models.MergedItem, error) {
	var byItem map[int64]models.OverlayRecord
	if identityID != nil {
		records, err := v.overlay.Query(ctx, *identityID)
		if err != nil {
			return nil, err
		}
		byItem = make(map[int64]models.OverlayRecord, len(records))
		for _, rec := range records {
			byItem[rec.ItemID] = rec
		}
	}

	items := v.catalog.Items()
	merged := make([]models.MergedItem, 0, len(items))
	for _, item := range items {
		m := models.MergedItem{
			CatalogItem: item,
			Status:      models.StatusNone,
		}
		if rec, ok := byItem[item.ID]; ok {
			m.Status = rec.Status
			m.Rating = rec.Rating
			updatedAt := rec.UpdatedAt
			m.UpdatedAt = &updatedAt
		}
		merged = append(merged, m)
	}

	return merged, nil
}
