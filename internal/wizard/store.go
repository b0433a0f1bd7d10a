package wizard

import (
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("wizard session not found")

// SessionStore keeps in-flight wizard sessions with an inactivity TTL.
// A session that goes untouched past the TTL is dropped; the client starts
// over, same as a browser session timing out.
type SessionStore struct {
	cache *gocache.Cache
}

// NewSessionStore creates a store expiring sessions after ttl of inactivity.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Put saves a session, refreshing its TTL.
func (s *SessionStore) Put(session *Session) {
	s.cache.SetDefault(session.ID, session)
}

// Get returns the session for an ID.
func (s *SessionStore) Get(id string) (*Session, error) {
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return value.(*Session), nil
}

// Delete drops a session.
func (s *SessionStore) Delete(id string) {
	s.cache.Delete(id)
}
