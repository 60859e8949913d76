package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"hsl-agent/internal/domain"
)

// Store keeps sessions in process memory. Destroying a session drops its
// history for good.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	now      func() time.Time
	newID    func() string
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *Store) Create() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := domain.NewSession(s.newID(), s.now())
	s.sessions[sess.ID] = sess
	return sess
}

// Open returns the session with id, creating it when it does not exist yet.
func (s *Store) Open(id string) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := domain.NewSession(id, s.now())
	s.sessions[id] = sess
	return sess
}

func (s *Store) Get(id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *Store) Destroy(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
