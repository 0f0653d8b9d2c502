package usecase

import (
	"sync"
)

// SessionState is the current state of an operator's registration
// conversation
type SessionState int

const (
	// StateIdle means no conversation is in flight
	StateIdle SessionState = iota
	// StateAwaitingToken waits for a bot token during bot onboarding
	StateAwaitingToken
	// StateAwaitingName waits for a display name during bot onboarding
	StateAwaitingName
	// StateAwaitingChannel waits for a channel reference during channel
	// onboarding
	StateAwaitingChannel
)

// String returns a readable state name for logging
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingToken:
		return "awaiting_token"
	case StateAwaitingName:
		return "awaiting_name"
	case StateAwaitingChannel:
		return "awaiting_channel"
	default:
		return "unknown"
	}
}

// Session holds one operator's conversation state and accumulated draft
type Session struct {
	State SessionState

	// bot onboarding draft
	Token       string
	BotUsername string

	// channel onboarding parameter, captured when the conversation starts
	BotID uint
}

// reset discards the draft and returns the conversation to idle
func (s *Session) reset() {
	*s = Session{State: StateIdle}
}

// sessionEntry pairs a session with its per-operator lock
type sessionEntry struct {
	mu      sync.Mutex
	session Session
}

// SessionStore keeps per-operator conversation state in memory. State is
// created on first interaction and cleared on completion or cancellation;
// a restart loses in-flight conversations, which is acceptable.
//
// Updates for one operator serialize on a per-operator lock so two
// concurrent messages from the same operator cannot race on the same
// conversation. Different operators proceed independently.
type SessionStore struct {
	mu      sync.Mutex
	entries map[int64]*sessionEntry
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[int64]*sessionEntry),
	}
}

// Update runs fn against the operator's session as one atomic
// read-modify-write. The session the callback sees is always current, and
// no other update for the same operator runs until fn returns.
func (s *SessionStore) Update(operatorID int64, fn func(*Session)) {
	entry := s.entry(operatorID)

	entry.mu.Lock()
	fn(&entry.session)
	idle := entry.session.State == StateIdle
	entry.mu.Unlock()

	if idle {
		s.evict(operatorID)
	}
}

// State returns the operator's current conversation state
func (s *SessionStore) State(operatorID int64) SessionState {
	s.mu.Lock()
	entry, ok := s.entries[operatorID]
	s.mu.Unlock()
	if !ok {
		return StateIdle
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.State
}

// entry returns the operator's entry, creating it if needed
func (s *SessionStore) entry(operatorID int64) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[operatorID]
	if !ok {
		entry = &sessionEntry{session: Session{State: StateIdle}}
		s.entries[operatorID] = entry
	}
	return entry
}

// evict drops an idle entry. A racing Update recreates it, so eviction is
// only a memory bound, never a correctness concern.
func (s *SessionStore) evict(operatorID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[operatorID]; ok {
		entry.mu.Lock()
		idle := entry.session.State == StateIdle
		entry.mu.Unlock()
		if idle {
			delete(s.entries, operatorID)
		}
	}
}
