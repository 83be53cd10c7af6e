// internal/store/memory.go
//
// In-memory implementation of the session Store.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map, each with an expiry.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Expired sessions stay until Expired/Delete remove them; the server sweeps
//     them periodically.
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing session IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/guess-number/internal/game"
)

// ErrNotFound is returned by Get and Delete for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the lookup interface for game sessions.
type Store interface {
	// Save persists or replaces a session that expires at exp.
	Save(ctx context.Context, s *game.Session, exp time.Time) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete forgets a session.
	Delete(ctx context.Context, id string) error

	// Expired lists the IDs of sessions whose expiry is not after now.
	Expired(ctx context.Context, now time.Time) ([]string, error)

	// Len reports how many sessions are held.
	Len() int
}

type entry struct {
	sess *game.Session
	exp  time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex     // guards sessions map
	sessions map[string]entry // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]entry)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *game.Session, exp time.Time) error {
	if s == nil || s.ID == "" {
		return errors.New("store: session without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = entry{sess: s, exp: exp}
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.sessions[id]; ok {
		return e.sess, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memory) Expired(ctx context.Context, now time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id, e := range m.sessions {
		if !e.exp.After(now) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
