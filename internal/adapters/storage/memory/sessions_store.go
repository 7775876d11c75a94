package memory

import (
	"context"
	"sync"
	"time"

	"pet-adoption/internal/ports/auth"
)

// SessionStore guarda sesiones en memoria; se pierden al reiniciar.
type SessionStore struct {
	mu   sync.Mutex
	byID map[string]auth.Session
	now  func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		byID: make(map[string]auth.Session),
		now:  time.Now,
	}
}

func (s *SessionStore) Create(ctx context.Context, sess auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[sess.ID] = sess
	return nil
}

func (s *SessionStore) Get(ctx context.Context, sid string) (auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[sid]
	if !ok || sess.Expired(s.now()) {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, sid)
	return nil
}

func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sess := range s.byID {
		if sess.Expired(now) {
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}
