package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-quiz/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Engines live in process; Redis only carries liveness markers so operators
// can count active players across instances.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.QuizEngine
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.QuizEngine),
	}
}

func (s *SessionStore) GetOrCreate(id string, create func() *app.QuizEngine) (*app.QuizEngine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if engine, ok := s.sessions[id]; ok {
		// best-effort liveness refresh
		_ = s.client.Expire(context.Background(), s.key(id), s.ttl).Err()
		return engine, false
	}
	engine := create()
	s.sessions[id] = engine
	_ = s.client.Set(context.Background(), s.key(id), "1", s.ttl).Err()
	return engine, true
}

func (s *SessionStore) Get(id string) (*app.QuizEngine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	engine, ok := s.sessions[id]
	return engine, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	engine, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	engine.Close()
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) key(id string) string {
	return "movie_quiz:session:" + id
}
