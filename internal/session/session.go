package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL matches the 24h check period the session store has always used.
const DefaultTTL = 24 * time.Hour

type entry struct {
	userID    int
	expiresAt time.Time
}

// Store maps opaque session tokens to authenticated user ids. Tokens are
// random uuids; nothing about a principal can be derived from one without
// asking the store.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

// NewStore creates a session store and starts a janitor goroutine that purges
// expired sessions once per TTL period. Close stops the janitor.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Create binds a fresh opaque token to the given user id.
func (s *Store) Create(userID int) string {
	token := uuid.NewString()

	s.mu.Lock()
	s.entries[token] = entry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	return token
}

// Get resolves a token to its user id. Expired or unknown tokens resolve to
// (0, false).
func (s *Store) Get(token string) (int, bool) {
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return 0, false
	}
	return e.userID, true
}

// Delete unbinds a token. Deleting an unknown token is a no-op, which keeps
// logout idempotent.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
}

// Close stops the janitor goroutine.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purgeExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) purgeExpired() {
	now := time.Now()

	s.mu.Lock()
	for token, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, token)
		}
	}
	s.mu.Unlock()
}
