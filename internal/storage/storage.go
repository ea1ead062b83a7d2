package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eugenenazirov/soil-calculator/internal/metrics"
	"github.com/eugenenazirov/soil-calculator/internal/selection"
)

// DefaultMaxSessions caps the number of sessions held in memory.
const DefaultMaxSessions = 10000

var (
	// ErrSessionNotFound indicates no session exists for the given ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions indicates the in-memory session cap has been reached.
	ErrTooManySessions = errors.New("too many active sessions")
)

// Session is a user's selection as stored by the service.
type Session struct {
	ID        string          `json:"id"`
	State     selection.State `json:"state"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Storage keeps selection sessions for the lifetime of the process.
type Storage interface {
	Create(state selection.State) (Session, error)
	Get(id string) (Session, error)
	Update(id string, fn func(selection.State) (selection.State, error)) (Session, error)
	Delete(id string) error
	Len() int
}

// Option configures MemoryStorage.
type Option func(*MemoryStorage)

// WithMaxSessions overrides DefaultMaxSessions. Non-positive values are ignored.
func WithMaxSessions(n int) Option {
	return func(s *MemoryStorage) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *MemoryStorage) {
		s.clock = clock
	}
}

// MemoryStorage keeps sessions in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
	clock       func() time.Time
}

// NewMemoryStorage returns an empty session store.
func NewMemoryStorage(opts ...Option) *MemoryStorage {
	s := &MemoryStorage{
		sessions:    make(map[string]*Session),
		maxSessions: DefaultMaxSessions,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores state under a new session ID.
func (s *MemoryStorage) Create(state selection.State) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.maxSessions {
		return Session{}, ErrTooManySessions
	}

	now := s.clock()
	session := &Session{
		ID:        uuid.NewString(),
		State:     state.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[session.ID] = session
	metrics.SetActiveSessions(len(s.sessions))

	return cloneSession(session), nil
}

// Get returns a defensive copy of the session.
func (s *MemoryStorage) Get(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return cloneSession(session), nil
}

// Update applies fn to the session's state under the write lock. When fn fails
// the stored state is left untouched and fn's error is returned.
func (s *MemoryStorage) Update(id string, fn func(selection.State) (selection.State, error)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	next, err := fn(session.State.Clone())
	if err != nil {
		return Session{}, err
	}

	session.State = next.Clone()
	session.UpdatedAt = s.clock()
	return cloneSession(session), nil
}

// Delete removes the session.
func (s *MemoryStorage) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	metrics.SetActiveSessions(len(s.sessions))
	return nil
}

// Len returns the number of stored sessions.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func cloneSession(src *Session) Session {
	out := *src
	out.State = src.State.Clone()
	return out
}
