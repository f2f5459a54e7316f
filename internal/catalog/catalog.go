// Package catalog loads the immutable item catalog. The catalog is read
// once at construction and never mutated afterwards; every merge view joins
// against the same ordered, id-unique set of items.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"gameshelf/internal/common"
	"gameshelf/internal/models"
)

//go:embed seed.json
var seedJSON []byte

// Catalog is the ordered, id-unique set of catalog items.
type Catalog struct {
	items []models.CatalogItem
	byID  map[int64]models.CatalogItem
}

// New builds a catalog from the given items, preserving their order.
// Duplicate ids are rejected.
func New(items []models.CatalogItem) (*Catalog, error) {
	byID := make(map[int64]models.CatalogItem, len(items))
	for _, item := range items {
		if _, exists := byID[item.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate catalog id %d", common.ErrorValidation, item.ID)
		}
		byID[item.ID] = item
	}

	copied := make([]models.CatalogItem, len(items))
	copy(copied, items)

	return &Catalog{items: copied, byID: byID}, nil
}

// NewFromSeed builds the catalog from the embedded seed data.
func NewFromSeed() (*Catalog, error) {
	return parse(seedJSON)
}

// NewFromFile builds the catalog from a JSON file with the same layout as
// the embedded seed.
func NewFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var items []models.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(items)
}

// Items returns the catalog in load order. The returned slice is a copy;
// the catalog itself stays immutable.
func (c *Catalog) Items() []models.CatalogItem {
	out := make([]models.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// ByID looks up one item.
func (c *Catalog) ByID(id int64) (models.CatalogItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}
