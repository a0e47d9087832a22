package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	username  string
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Used when no Redis URL
// is configured, and by tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

// Set binds a token to a username for ttl
func (s *MemoryStore) Set(ctx context.Context, token, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memoryEntry{
		username:  username,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Get returns the username bound to a token, or "" when absent
func (s *MemoryStore) Get(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[token]
	if !ok {
		return "", nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return "", nil
	}
	return entry.username, nil
}

// Delete removes a single session
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Clear removes every session
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]memoryEntry)
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
