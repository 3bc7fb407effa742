package memory

import (
	"context"
	"testing"
	"time"

	"movie-quiz/internal/domain"
)

func TestStatisticsStoreRoundTrip(t *testing.T) {
	store := NewStatisticsStore()
	ctx := context.Background()

	empty, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if empty != (domain.StatisticsRecord{}) {
		t.Fatalf("expected zero record on first run, got %+v", empty)
	}

	record := domain.StatisticsRecord{
		GamesCount:   2,
		TotalCorrect: 9,
		TotalAmount:  20,
		BestGame:     domain.GameResult{Correct: 6, Total: 10, Date: time.Unix(1700000000, 0)},
	}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := store.Load(ctx)
	if got != record {
		t.Fatalf("expected %+v, got %+v", record, got)
	}
}
