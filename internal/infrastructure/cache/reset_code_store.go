package cache

import (
	"context"
	"sync"
	"time"

	appidentity "github.com/autoparts/backend/internal/application/identity"
)

// entry represents a stored reset code with expiration
type entry struct {
	code      string
	expiresAt time.Time
}

// InMemoryResetCodeStore implements ResetCodeStore using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryResetCodeStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryResetCodeStore creates a new in-memory reset code store.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryResetCodeStore() *InMemoryResetCodeStore {
	store := &InMemoryResetCodeStore{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Put stores a reset code for the email with a TTL, replacing any
// previous code
func (s *InMemoryResetCodeStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email] = entry{
		code:      code,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Get returns the stored code, or an empty string when absent or expired
func (s *InMemoryResetCodeStore) Get(_ context.Context, email string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[email]
	if !exists || time.Now().After(e.expiresAt) {
		return "", nil
	}
	return e.code, nil
}

// Delete removes the stored code for the email
func (s *InMemoryResetCodeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (s *InMemoryResetCodeStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (s *InMemoryResetCodeStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired entries from the store
func (s *InMemoryResetCodeStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for email, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, email)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemoryResetCodeStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ appidentity.ResetCodeStore = (*InMemoryResetCodeStore)(nil)
