package royalty

import (
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("royalty: session not found")

type storeEntry struct {
	session   *Session
	expiresAt time.Time
}

// Store keeps live sessions in memory. A session is bound to one operator
// working one book; there is no cross-instance sharing and expiry simply
// drops abandoned sessions.
type Store struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewStore constructs a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		entries: make(map[string]*storeEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put registers a session, replacing any previous one under the same id.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.entries[s.ID] = &storeEntry{session: s, expiresAt: st.now().Add(st.ttl)}
}

// Get returns the session and refreshes its expiry.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	entry, ok := st.entries[id]
	if !ok || st.now().After(entry.expiresAt) {
		delete(st.entries, id)
		return nil, ErrSessionNotFound
	}
	entry.expiresAt = st.now().Add(st.ttl)
	return entry.session, nil
}

// Delete removes a session. Missing ids are a no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.entries, id)
}

// Len reports the number of live sessions, expired entries included until swept.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

// Sweep drops expired sessions and reports how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	removed := 0
	for id, entry := range st.entries {
		if now.After(entry.expiresAt) {
			delete(st.entries, id)
			removed++
		}
	}
	return removed
}
