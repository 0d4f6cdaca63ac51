package repository

import (
	"context"
	"errors"
	"sync"
)

var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// SnapshotRepository stores one opaque cart snapshot per storage key.
// Save replaces the whole snapshot atomically; readers never see a partial write.
type SnapshotRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

type memorySnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemorySnapshotRepository() SnapshotRepository {
	return &memorySnapshotRepository{snapshots: make(map[string][]byte)}
}

func (r *memorySnapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payload, ok := r.snapshots[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (r *memorySnapshotRepository) Save(_ context.Context, key string, payload []byte) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)
	r.mu.Lock()
	r.snapshots[key] = stored
	r.mu.Unlock()
	return nil
}
