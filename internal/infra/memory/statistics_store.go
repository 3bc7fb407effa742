package memory

import (
	"context"
	"sync"

	"movie-quiz/internal/domain"
)

// StatisticsStore keeps the statistics record in process memory.
type StatisticsStore struct {
	mu     sync.RWMutex
	record domain.StatisticsRecord
}

func NewStatisticsStore() *StatisticsStore {
	return &StatisticsStore{}
}

func (s *StatisticsStore) Load(context.Context) (domain.StatisticsRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record, nil
}

func (s *StatisticsStore) Save(_ context.Context, record domain.StatisticsRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = record
	return nil
}
