package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

// Store: in-memory хранилище сессий с TTL. Теряется при рестарте.
type Store struct {
	mu       sync.RWMutex
	sessions map[domain.SessionKey]entry
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	session   domain.Session
	expiresAt time.Time
}

func New(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[domain.SessionKey]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Get(_ context.Context, key domain.SessionKey) (domain.Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		// могли пересохранить, пока ждали блокировку
		if cur, ok := s.sessions[key]; ok && !s.now().Before(cur.expiresAt) {
			delete(s.sessions, key)
		}
		s.mu.Unlock()
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return e.session, nil
}

// Save продлевает TTL при каждом ответе пользователя.
func (s *Store) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	s.sessions[session.Key()] = entry{session: session, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key domain.SessionKey) error {
	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()
	return nil
}

// Sweep удаляет истёкшие сессии и возвращает их количество.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, k)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run периодически чистит истёкшие сессии до отмены ctx.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
