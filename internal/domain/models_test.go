package domain

import "testing"

func TestGameResultRatio(t *testing.T) {
	if got := (GameResult{}).Ratio(); got != 0 {
		t.Fatalf("expected 0 ratio for empty result, got %v", got)
	}
	if got := (GameResult{Correct: 3, Total: 4}).Ratio(); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestGameResultIsBetterThanIsStrict(t *testing.T) {
	a := GameResult{Correct: 5, Total: 10}
	b := GameResult{Correct: 1, Total: 2}
	if a.IsBetterThan(b) || b.IsBetterThan(a) {
		t.Fatalf("equal ratios must not be better than each other")
	}
	if !(GameResult{Correct: 6, Total: 10}).IsBetterThan(a) {
		t.Fatalf("expected 6/10 to beat 5/10")
	}
}

func TestStatisticsRecordAccuracy(t *testing.T) {
	if got := (StatisticsRecord{}).Accuracy(); got != 0 {
		t.Fatalf("expected 0 accuracy without games, got %v", got)
	}
	r := StatisticsRecord{GamesCount: 2, TotalCorrect: 15, TotalAmount: 20}
	if got := r.Accuracy(); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
}
