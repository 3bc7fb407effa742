package memory

import (
	"sync"

	"movie-quiz/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.QuizEngine
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.QuizEngine),
	}
}

func (s *SessionStore) GetOrCreate(id string, create func() *app.QuizEngine) (*app.QuizEngine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if engine, ok := s.sessions[id]; ok {
		return engine, false
	}
	engine := create()
	s.sessions[id] = engine
	return engine, true
}

func (s *SessionStore) Get(id string) (*app.QuizEngine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	engine, ok := s.sessions[id]
	return engine, ok
}

// Delete removes the session and closes its engine.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	engine, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		engine.Close()
	}
}

func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
