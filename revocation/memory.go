package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process blacklist: a mutex-guarded map from token id
// to recorded expiry, plus a background sweeper that evicts entries once
// their expiry has passed. The sweeper only deletes — it never marks a token
// revoked — so a backlog or slow tick can never produce a false positive.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time

	sweepInterval time.Duration
	done          chan struct{}
	wg            sync.WaitGroup
	closeOnce     sync.Once

	now func() time.Time
}

// NewMemoryStore creates a [MemoryStore] and starts its sweeper. The sweeper
// runs on a fixed interval independent of request traffic and stops when
// Close is called.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	s := &MemoryStore{
		entries:       make(map[string]time.Time),
		sweepInterval: sweepInterval,
		done:          make(chan struct{}),
		now:           time.Now,
	}

	s.wg.Add(1)
	go s.run()

	return s
}

func (s *MemoryStore) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, expiresAt := range s.entries {
		if !expiresAt.After(now) {
			delete(s.entries, id)
		}
	}
}

// Revoke records the token id until expiresAt. A token already past its
// expiry is dead on its own and is not recorded.
func (s *MemoryStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	if !expiresAt.After(s.now()) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Idempotent: keep the later expiry if the id was already revoked.
	if existing, ok := s.entries[tokenID]; !ok || expiresAt.After(existing) {
		s.entries[tokenID] = expiresAt
	}

	return nil
}

// IsRevoked reports whether the token id carries a live revocation marker.
func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.entries[tokenID]
	if !ok {
		return false, nil
	}
	return expiresAt.After(s.now()), nil
}

// Close stops the sweeper and waits for it to exit. Safe to call more than
// once.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
	return nil
}

func (s *MemoryStore) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
