package models

import "time"

// CatalogItem is one entry of the immutable catalog. Items are never mutated
// after load and ids are unique and stable.
type CatalogItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	Platform    string    `json:"platform"`
	ReleaseDate time.Time `json:"release_date"`
	CoverRef    string    `json:"cover_ref"`
	CreatedAt   time.Time `json:"created_at"`
}
