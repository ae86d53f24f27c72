// internal/store/memory.go
//
// Session persistence for the guessing game.
// This file defines the Store interface and its in-memory implementation,
// used by default and in tests when durability is not required.
//
// Characteristics:
//   - Stores game.Session values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/robalobadob/numguess/internal/game"
)

// ErrNotFound is returned when no session exists for an ID.
var ErrNotFound = errors.New("store: not found")

// Round is the outcome of one finished game within a session.
type Round struct {
	SessionID  string      `json:"-"`
	Round      int         `json:"round"`
	Status     game.Status `json:"status"` // won | lost
	Attempts   int         `json:"attempts"`
	Secret     int         `json:"secret"`
	FinishedAt time.Time   `json:"finishedAt"`
}

// Store defines the persistence interface for game sessions.
// Implementations may be backed by memory (this file) or SQLite (sqlite.go).
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s game.Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (game.Session, error)

	// RecordRound stores a finished round. Recording the same
	// (session, round) twice keeps the first record.
	RecordRound(ctx context.Context, r Round) error

	// Rounds lists finished rounds for a session, oldest first.
	Rounds(ctx context.Context, sessionID string) ([]Round, error)

	// Close releases any underlying resources.
	Close() error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex            // guards both maps
	sessions map[string]game.Session // keyed by Session.ID
	rounds   map[string][]Round      // keyed by session ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		sessions: make(map[string]game.Session),
		rounds:   make(map[string][]Round),
	}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return game.Session{}, ErrNotFound
}

func (m *memory) RecordRound(ctx context.Context, r Round) error {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rounds[r.SessionID] {
		if existing.Round == r.Round {
			return nil
		}
	}
	m.rounds[r.SessionID] = append(m.rounds[r.SessionID], r)
	return nil
}

func (m *memory) Rounds(ctx context.Context, sessionID string) ([]Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Round{}, m.rounds[sessionID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out, nil
}

func (m *memory) Close() error { return nil }
