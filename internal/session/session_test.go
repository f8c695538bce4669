package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGetDelete(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Close()

	token := s.Create(42)
	require.NotEmpty(t, token)

	userID, ok := s.Get(token)
	assert.True(t, ok)
	assert.Equal(t, 42, userID)

	s.Delete(token)
	_, ok = s.Get(token)
	assert.False(t, ok)

	// idempotent delete
	s.Delete(token)
}

func TestTokensAreUniqueAndOpaque(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Close()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := s.Create(i)
		assert.False(t, seen[token], "token reused")
		seen[token] = true
	}
}

func TestExpiredTokenDoesNotResolve(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Close()

	token := s.Create(7)

	s.mu.Lock()
	e := s.entries[token]
	e.expiresAt = time.Now().Add(-time.Minute)
	s.entries[token] = e
	s.mu.Unlock()

	_, ok := s.Get(token)
	assert.False(t, ok)

	s.purgeExpired()
	s.mu.RLock()
	_, present := s.entries[token]
	s.mu.RUnlock()
	assert.False(t, present)
}

func TestUnknownToken(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Close()

	_, ok := s.Get("not-a-token")
	assert.False(t, ok)
}
