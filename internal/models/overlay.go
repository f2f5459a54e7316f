package models

import "time"

// Status describes an identity's relationship to a catalog item.
type Status string

const (
	StatusNone      Status = "none"
	StatusWishlist  Status = "wishlist"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusNone, StatusWishlist, StatusPlaying, StatusCompleted, StatusAbandoned:
		return true
	}
	return false
}

// Rating bounds. A rating of 0 means "unrated".
const (
	RatingMin = 0.0
	RatingMax = 10.0
)

// OverlayRecord stores one identity's mutable annotations for one catalog
// item. At most one record exists per (OwnerID, ItemID) pair. A record with
// status none and rating 0 is never stored: absence of a record is the
// canonical representation of "no relationship".
type OverlayRecord struct {
	OwnerID   int64     `json:"owner_id"`
	ItemID    int64     `json:"item_id"`
	Status    Status    `json:"status"`
	Rating    float64   `json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MergedItem is one catalog item joined with the viewing identity's overlay
// fields. UpdatedAt is nil when no overlay record exists for the item.
type MergedItem struct {
	CatalogItem
	Status    Status
	Rating    float64
	UpdatedAt *time.Time
}
