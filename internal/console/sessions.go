package console

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jayeuse/Inventory-System-sub000/internal/auth"
	"github.com/jayeuse/Inventory-System-sub000/internal/core/container"
	"github.com/jayeuse/Inventory-System-sub000/internal/notify"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"go.uber.org/zap"
)

// Factory builds the services for a new backend session. Each console
// session gets its own cookie jar.
type Factory func() (*container.Container, error)

// Session is one browser sign-in. It owns a backend client, the login flow
// driving it and the toasts raised by its actions.
type Session struct {
	ID        string
	Services  *container.Container
	Flow      *auth.Flow
	Notifier  *notify.Notifier
	Feed      *notify.Feed
	CreatedAt time.Time

	mu   sync.Mutex
	user *models.CurrentUser
}

func (s *Session) User() *models.CurrentUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) setUser(user *models.CurrentUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  Factory
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessionStore(factory Factory, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{sessions: map[string]*Session{}, factory: factory, logger: logger, now: time.Now}
}

func (s *SessionStore) Create() (*Session, error) {
	services, err := s.factory()
	if err != nil {
		return nil, err
	}

	feed := notify.NewFeed()
	session := &Session{
		ID:        uuid.NewString(),
		Services:  services,
		Flow:      auth.NewFlow(services.Auth, s.logger),
		Notifier:  notify.NewNotifier(feed, nil),
		Feed:      feed,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Debug("Console session created", zap.String("session_id", session.ID))
	return session, nil
}

func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Prune drops sessions that never finished signing in within maxAge.
func (s *SessionStore) Prune(maxAge time.Duration) int {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.User() == nil && session.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
