package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the log in process memory. It only deduplicates
// redeliveries that reach the same process.
type MemoryStore struct {
	mu     sync.Mutex
	seen   map[int64]time.Time
	closed bool
	now    func() time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{seen: make(map[int64]time.Time), now: time.Now}
}

func (s *MemoryStore) MarkProcessed(_ context.Context, updateID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	if _, ok := s.seen[updateID]; ok {
		return false, nil
	}
	s.seen[updateID] = s.now()
	return true, nil
}

func (s *MemoryStore) Forget(_ context.Context, updateID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	delete(s.seen, updateID)
	return nil
}

func (s *MemoryStore) Prune(_ context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	removed := 0
	for id, at := range s.seen {
		if at.Before(olderThan) {
			delete(s.seen, id)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
