// Package store holds the process-wide session dataset behind a
// reader-writer lock. The dataset is only ever replaced wholesale.
package store

import (
	"sync"
	"time"

	"github.com/sonnes/chatview/core"
)

// Info describes the dataset currently held by a Store.
type Info struct {
	Source   string    // "data.json", "upload", ...
	LoadedAt time.Time // zero until the first Replace
	Sessions int
	Records  int
}

// Store is the authoritative in-memory session collection.
type Store struct {
	mu       sync.RWMutex
	sessions []core.Session
	info     Info
}

// New returns an empty Store.
func New() *Store {
	return &Store{sessions: []core.Session{}}
}

// All returns the current snapshot. Callers must not modify it.
func (s *Store) All() []core.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions
}

// Len reports the number of sessions in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Find returns the first session with the given ID.
func (s *Store) Find(id string) (core.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return core.Session{}, false
}

// Replace swaps in a new dataset. A nil slice is stored as empty.
func (s *Store) Replace(sessions []core.Session, source string) {
	if sessions == nil {
		sessions = []core.Session{}
	}
	info := Info{
		Source:   source,
		LoadedAt: time.Now(),
		Sessions: len(sessions),
		Records:  core.CountRecords(sessions),
	}

	s.mu.Lock()
	s.sessions = sessions
	s.info = info
	s.mu.Unlock()
}

// Info returns metadata about the current dataset.
func (s *Store) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}
