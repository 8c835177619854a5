// Package suggestions holds the short-lived manage sessions opened when a
// staff member clicks the manage button on a suggestion. The decision modal
// that follows does not carry the suggestion id, so the association between
// staff member and suggestion lives here until the modal is submitted.
package suggestions

import (
	"sync"
	"time"
)

// DefaultSessionTTL bounds how long a manage session stays usable. A modal
// left open past this window resolves to "not found in cache".
const DefaultSessionTTL = 10 * time.Minute

type session struct {
	suggestionID int64
	expiresAt    time.Time
}

// SessionStore remembers, per staff member, which suggestion they are
// currently managing. Each staff member has a single slot: opening manage on
// a second suggestion overwrites the first.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]session
	now      func() time.Time
}

// NewSessionStore creates a store with the given session lifetime.
// A non-positive ttl falls back to DefaultSessionTTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]session),
		now:      time.Now,
	}
}

// Set records the suggestion the staff member is managing, overwriting any
// previous session for the same staff member.
func (s *SessionStore) Set(staffID string, suggestionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[staffID] = session{
		suggestionID: suggestionID,
		expiresAt:    s.now().Add(s.ttl),
	}
}

// Get returns the suggestion id associated with the staff member. Expired
// sessions are dropped and reported as absent.
func (s *SessionStore) Get(staffID string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[staffID]
	if !ok {
		return 0, false
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, staffID)
		return 0, false
	}
	return sess.suggestionID, true
}

// Clear removes the staff member's session, if any.
func (s *SessionStore) Clear(staffID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, staffID)
}
