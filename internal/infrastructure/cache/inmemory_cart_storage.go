package cache

import (
	"context"
	"sync"
	"time"

	"github.com/monaco/tienda/internal/domain/cart"
)

type slot struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryCartStorage keeps cart slots in process memory with a TTL. A
// background loop evicts expired slots until Close is called.
type InMemoryCartStorage struct {
	mu        sync.RWMutex
	slots     map[string]slot
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCartStorage creates the store and starts the eviction loop
func NewInMemoryCartStorage(ttl, sweepEvery time.Duration) *InMemoryCartStorage {
	s := &InMemoryCartStorage{
		slots:    make(map[string]slot),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	if sweepEvery > 0 {
		s.wg.Add(1)
		go s.evictLoop(sweepEvery)
	}
	return s
}

// Load implements cart.Storage. Expired slots read as empty.
func (s *InMemoryCartStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.slots[key]
	if !ok || s.now().After(sl.expiresAt) {
		return nil, nil
	}
	out := make([]byte, len(sl.data))
	copy(out, sl.data)
	return out, nil
}

// Save implements cart.Storage
func (s *InMemoryCartStorage) Save(_ context.Context, key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = slot{data: buf, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Close stops the eviction loop. Safe to call multiple times.
func (s *InMemoryCartStorage) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of stored slots, expired ones included
func (s *InMemoryCartStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}

func (s *InMemoryCartStorage) evictLoop(every time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *InMemoryCartStorage) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, sl := range s.slots {
		if now.After(sl.expiresAt) {
			delete(s.slots, key)
		}
	}
}

var _ cart.Storage = (*InMemoryCartStorage)(nil)
