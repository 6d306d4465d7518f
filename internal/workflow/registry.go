package workflow

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// Factory builds the State of a new session.
type Factory func() *State

// Registry keeps one State per recruiter session. Sessions never share
// state with each other.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*registryEntry
	newState Factory
	now      func() time.Time
	logger   *zap.Logger
}

type registryEntry struct {
	state    *State
	lastSeen time.Time
}

func NewRegistry(factory Factory, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*registryEntry),
		newState: factory,
		now:      time.Now,
		logger:   logger,
	}
}

func (r *Registry) Create() (string, *State) {
	id := uuid.NewString()
	state := r.newState()

	r.mu.Lock()
	r.sessions[id] = &registryEntry{state: state, lastSeen: r.now()}
	r.mu.Unlock()

	r.logger.Info("session created", zap.String("session_id", id))
	return id, state
}

// Get returns the State of a session and marks the session as active.
func (r *Registry) Get(id string) (*State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = r.now()
	return entry.state, nil
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	r.logger.Info("session deleted", zap.String("session_id", id))
	return true
}

// EvictIdle removes sessions not touched for longer than ttl and returns
// how many were removed.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	evicted := 0
	for id, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
			r.logger.Debug("session evicted", zap.String("session_id", id))
		}
	}
	return evicted
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
