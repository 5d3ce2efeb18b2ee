package intake

import (
	"context"
	"sync"
	"time"

	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Step is a wizard position.
type Step int

const (
	StepCity Step = iota + 1
	StepCategory
	StepForm
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepCity:
		return "city"
	case StepCategory:
		return "category"
	case StepForm:
		return "form"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// State is the value held by one intake session.
type State struct {
	Step     Step
	City     string
	Category domain.Category
	// Raw holds the last submitted values, kept across failed submissions.
	Raw        domain.RawFields
	Summary    string
	Error      string
	Submitting bool
}

// Session owns one State. All transitions go through the Controller.
type Session struct {
	ID string

	mu       sync.Mutex
	state    State
	lastSeen time.Time
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Raw = append(domain.RawFields(nil), s.state.Raw...)
	return st
}

func newState() State {
	return State{Step: StepCity}
}

// SessionStore keeps sessions in memory and expires idle ones.
type SessionStore struct {
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates a store whose sessions expire after ttl without use.
func NewSessionStore(ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    clock,
		metrics:  metrics,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session at the city step.
func (st *SessionStore) Create() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		state:    newState(),
		lastSeen: st.clock.Now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	n := len(st.sessions)
	st.mu.Unlock()
	st.metrics.ActiveSessions.Set(float64(n))
	return s
}

// Get returns a live session and marks it as used.
func (st *SessionStore) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	now := st.clock.Now()

	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Sub(s.lastSeen) > st.ttl {
		delete(st.sessions, id)
		st.metrics.ActiveSessions.Set(float64(len(st.sessions)))
		return nil, false
	}
	s.lastSeen = now
	return s, true
}

// Prune drops expired sessions and returns how many were removed. Sessions
// in the middle of a submission are kept.
func (st *SessionStore) Prune() int {
	now := st.clock.Now()

	st.mu.Lock()
	removed := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		expired := now.Sub(s.lastSeen) > st.ttl && !s.state.Submitting
		s.mu.Unlock()
		if expired {
			delete(st.sessions, id)
			removed++
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	st.metrics.ActiveSessions.Set(float64(n))
	return removed
}

// Len returns the number of sessions held.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Run prunes expired sessions every interval until ctx is cancelled.
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := st.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			st.Prune()
		}
	}
}
