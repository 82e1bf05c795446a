package cart

import (
	"context"
	"sync"
)

// Storage persists serialized cart state under a slot key
type Storage interface {
	// Load returns the slot contents, or nil when the slot is empty
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the slot contents
	Save(ctx context.Context, key string, data []byte) error
}

// MemoryStorage keeps slots in process memory
type MemoryStorage struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStorage creates an empty in-memory slot store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{slots: make(map[string][]byte)}
}

// Load implements Storage
func (s *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.slots[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// Save implements Storage
func (s *MemoryStorage) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.slots[key] = buf
	return nil
}
