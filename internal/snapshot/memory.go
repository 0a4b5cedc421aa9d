package snapshot

import (
	"context"
	"sync"

	"github.com/dentassist/dentsync/internal/model"
)

// MemoryStore is an in-process backend used in tests and ephemeral runs.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (model.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Decode(m.data)
}

func (m *MemoryStore) Save(_ context.Context, state model.AppState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}
