package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"movie-quiz/internal/domain"
)

// StatisticsStore persists the lifetime statistics record (sqlite, redis, etc).
type StatisticsStore interface {
	Load(ctx context.Context) (domain.StatisticsRecord, error)
	Save(ctx context.Context, record domain.StatisticsRecord) error
}

// StatisticsTracker aggregates completed rounds. It loads the record once on
// construction and flushes it to the store on every Record.
type StatisticsTracker struct {
	store StatisticsStore
	now   func() time.Time

	// saveMu orders update+Save pairs so the store never receives an older
	// record after a newer one. mu only guards reads of record.
	saveMu sync.Mutex
	mu     sync.RWMutex
	record domain.StatisticsRecord
}

func NewStatisticsTracker(ctx context.Context, store StatisticsStore) (*StatisticsTracker, error) {
	return NewStatisticsTrackerWithClock(ctx, store, time.Now)
}

// NewStatisticsTrackerWithClock allows deterministic best-game timestamps in tests.
func NewStatisticsTrackerWithClock(ctx context.Context, store StatisticsStore, now func() time.Time) (*StatisticsTracker, error) {
	record, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", domain.ErrStatisticsUnavailable, err)
	}
	return &StatisticsTracker{store: store, now: now, record: record}, nil
}

// Record adds one completed round and returns the record it produced. The
// best game is replaced only on a strictly greater ratio; the first round
// always becomes the best game. On a save error the returned record is still
// the updated in-memory one.
func (t *StatisticsTracker) Record(ctx context.Context, correct, total int) (domain.StatisticsRecord, error) {
	if total <= 0 || correct < 0 || correct > total {
		return t.Snapshot(), fmt.Errorf("%w: %d/%d", domain.ErrInvalidResult, correct, total)
	}

	t.saveMu.Lock()
	defer t.saveMu.Unlock()

	t.mu.Lock()
	t.record.GamesCount++
	t.record.TotalCorrect += correct
	t.record.TotalAmount += total
	game := domain.GameResult{Correct: correct, Total: total, Date: t.now()}
	if t.record.BestGame.Total == 0 || game.IsBetterThan(t.record.BestGame) {
		t.record.BestGame = game
	}
	snapshot := t.record
	t.mu.Unlock()

	if err := t.store.Save(ctx, snapshot); err != nil {
		return snapshot, fmt.Errorf("%w: save: %v", domain.ErrStatisticsUnavailable, err)
	}
	return snapshot, nil
}

// Reset clears the lifetime statistics.
func (t *StatisticsTracker) Reset(ctx context.Context) error {
	t.saveMu.Lock()
	defer t.saveMu.Unlock()

	t.mu.Lock()
	t.record = domain.StatisticsRecord{}
	t.mu.Unlock()

	if err := t.store.Save(ctx, domain.StatisticsRecord{}); err != nil {
		return fmt.Errorf("%w: save: %v", domain.ErrStatisticsUnavailable, err)
	}
	return nil
}

func (t *StatisticsTracker) GamesCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.record.GamesCount
}

func (t *StatisticsTracker) BestGame() domain.GameResult {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.record.BestGame
}

// TotalAccuracy is the lifetime average accuracy in percent.
func (t *StatisticsTracker) TotalAccuracy() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.record.Accuracy()
}

// Snapshot returns a copy of the current record.
func (t *StatisticsTracker) Snapshot() domain.StatisticsRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.record
}
