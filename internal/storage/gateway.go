// Package storage persists whole-state snapshots. Three backends share one
// contract: save overwrites the full snapshot document, and load degrades
// missing or corrupt data to "no snapshot" instead of failing the caller.
package storage

import (
	"context"

	"gameshelf/internal/models"
)

// Gateway is the durable snapshot store. Load returns (nil, nil) when no
// usable snapshot exists; a non-nil error is reserved for I/O faults the
// caller may still choose to degrade.
type Gateway interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}

// Persister triggers a write-through save of the current state. Services
// call it after every successful mutation, before returning to the caller,
// so the in-memory and persisted states never diverge across a call
// boundary.
type Persister interface {
	Persist(ctx context.Context) error
}
