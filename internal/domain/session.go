package domain

import (
	"sync"
	"time"
)

type Mode string

const (
	ModeChat          Mode = "chat"
	ModeCreativeBrief Mode = "creative_brief"
	ModeSummary       Mode = "summary"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
)

func (s State) String() string {
	if s == StateAwaitingResponse {
		return "awaiting_response"
	}
	return "idle"
}

// Session is everything one user owns: the chat history and the state of each
// mode. Modes cycle Idle -> AwaitingResponse -> Idle independently.
type Session struct {
	ID        string
	CreatedAt time.Time
	History   *History

	mu     sync.Mutex
	states map[Mode]State
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		History:   NewHistory(),
		states:    make(map[Mode]State),
	}
}

func (s *Session) State(m Mode) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[m]
}

// Begin moves mode m to AwaitingResponse. It fails with ErrBusy when m is
// already waiting.
func (s *Session) Begin(m Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[m] == StateAwaitingResponse {
		return ErrBusy
	}
	s.states[m] = StateAwaitingResponse
	return nil
}

// End returns mode m to Idle.
func (s *Session) End(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[m] = StateIdle
}
