package library

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/beatporter/beatporter/internal/domain"
)

const (
	// DefaultTTL is how long an untouched library stays resident.
	DefaultTTL = 1 * time.Hour

	// DefaultSweepInterval is how often the sweeper looks for idle
	// libraries.
	DefaultSweepInterval = 10 * time.Minute
)

type entry struct {
	library    *domain.Library
	lastAccess time.Time
}

// Store is the process-local registry of active libraries. All access
// goes through the store's lock; the store serializes registry
// operations only, not mutation of a library's contents.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a registry evicting libraries idle for longer than
// ttl. A non-positive ttl falls back to DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create registers a freshly parsed library and returns its id.
func (s *Store) Create(lib *domain.Library) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[lib.ID] = &entry{library: lib, lastAccess: s.now()}
	return lib.ID
}

// Get returns a registered library and refreshes its access time.
func (s *Store) Get(id string) (*domain.Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastAccess = s.now()
	return e.library, nil
}

// Delete removes a library from the registry.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// Len reports how many libraries are resident.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartSweeper runs the TTL eviction loop until ctx is cancelled.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if evicted := s.Sweep(); evicted > 0 {
					slog.Info("Evicted idle libraries", "count", evicted)
				}
			}
		}
	}()
	slog.Info("Library sweeper started", "interval", interval, "ttl", s.ttl)
}

// Sweep evicts every library idle for longer than the TTL and returns
// how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for id, e := range s.entries {
		if e.lastAccess.Before(cutoff) {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}
