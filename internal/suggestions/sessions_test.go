package suggestions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionSetAndGet(t *testing.T) {
	store := NewSessionStore(DefaultSessionTTL)
	store.Set("staff-1", 42)

	id, ok := store.Get("staff-1")
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)
}

func TestSessionAbsent(t *testing.T) {
	store := NewSessionStore(DefaultSessionTTL)

	_, ok := store.Get("staff-1")
	assert.False(t, ok)
}

func TestSessionOverwrite(t *testing.T) {
	store := NewSessionStore(DefaultSessionTTL)
	store.Set("staff-1", 42)
	store.Set("staff-1", 43)

	id, ok := store.Get("staff-1")
	assert.True(t, ok)
	assert.EqualValues(t, 43, id)
}

func TestSessionExpiry(t *testing.T) {
	store := NewSessionStore(time.Minute)
	current := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Set("staff-1", 42)

	current = current.Add(30 * time.Second)
	_, ok := store.Get("staff-1")
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = store.Get("staff-1")
	assert.False(t, ok)

	// An expired session is dropped, not resurrected.
	_, ok = store.Get("staff-1")
	assert.False(t, ok)
}

func TestSessionClear(t *testing.T) {
	store := NewSessionStore(DefaultSessionTTL)
	store.Set("staff-1", 42)
	store.Clear("staff-1")

	_, ok := store.Get("staff-1")
	assert.False(t, ok)
}

func TestSessionsArePerStaffMember(t *testing.T) {
	store := NewSessionStore(DefaultSessionTTL)
	store.Set("staff-1", 42)
	store.Set("staff-2", 43)

	id, _ := store.Get("staff-1")
	assert.EqualValues(t, 42, id)
	id, _ = store.Get("staff-2")
	assert.EqualValues(t, 43, id)
}
