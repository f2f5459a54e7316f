package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gameshelf/internal/models"
)

// MemoryGateway keeps the serialized snapshot in memory. It is useful for
// tests and for callers that explicitly opt out of durability. The document
// still round-trips through JSON so the backend behaves like the durable
// ones.
type MemoryGateway struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

func (m *MemoryGateway) Load(ctx context.Context) (*models.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return nil, nil
	}

	snap := &models.Snapshot{}
	if err := json.Unmarshal(m.data, snap); err != nil {
		return nil, nil
	}
	return snap, nil
}

func (m *MemoryGateway) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data

	return nil
}
