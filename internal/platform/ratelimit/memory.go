package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepEvery = 1024

// MemoryStore is an in-process Store. Windows are tracked per key and reset
// once their interval has elapsed.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	calls   int
	now     func() time.Time
}

type window struct {
	count     int64
	lastReset time.Time
	interval  time.Duration
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*window), now: time.Now}
}

// Increment implements Store.
func (s *MemoryStore) Increment(_ context.Context, key string, interval time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.calls++
	if s.calls%sweepEvery == 0 {
		s.sweep(now)
	}

	w, ok := s.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || now.Sub(w.lastReset) >= w.interval {
		w = &window{lastReset: now, interval: interval}
		s.windows[key] = w
	}
	w.count++

	return w.count, w.interval - now.Sub(w.lastReset), nil
}

// Decrement implements Store.
func (s *MemoryStore) Decrement(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.windows[key]; ok && w.count > 0 {
		w.count--
	}
	return nil
}

// sweep drops expired windows. Callers hold s.mu.
func (s *MemoryStore) sweep(now time.Time) {
	for key, w := range s.windows {
		if now.Sub(w.lastReset) >= w.interval {
			delete(s.windows, key)
		}
	}
}
