package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-quiz/internal/domain"
)

// Flat field names shared by every key-value statistics layout.
const (
	fieldGamesCount      = "games_count"
	fieldTotalCorrect    = "total_correct"
	fieldTotalAmount     = "total_amount"
	fieldBestGameCorrect = "best_game.correct"
	fieldBestGameTotal   = "best_game.total"
	fieldBestGameDate    = "best_game.date"
)

// StatisticsStore keeps the statistics record in one Redis hash:
// HSET movie_quiz:statistics games_count 3 total_correct 17 ...
type StatisticsStore struct {
	client *redis.Client
	key    string
}

func NewStatisticsStore(client *redis.Client) *StatisticsStore {
	return &StatisticsStore{client: client, key: "movie_quiz:statistics"}
}

func (s *StatisticsStore) Load(ctx context.Context) (domain.StatisticsRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return domain.StatisticsRecord{}, fmt.Errorf("load statistics: %w", err)
	}
	return decodeRecord(fields)
}

func (s *StatisticsStore) Save(ctx context.Context, record domain.StatisticsRecord) error {
	if err := s.client.HSet(ctx, s.key, encodeRecord(record)).Err(); err != nil {
		return fmt.Errorf("save statistics: %w", err)
	}
	return nil
}

func encodeRecord(record domain.StatisticsRecord) map[string]interface{} {
	date := ""
	if !record.BestGame.Date.IsZero() {
		date = record.BestGame.Date.UTC().Format(time.RFC3339Nano)
	}
	return map[string]interface{}{
		fieldGamesCount:      record.GamesCount,
		fieldTotalCorrect:    record.TotalCorrect,
		fieldTotalAmount:     record.TotalAmount,
		fieldBestGameCorrect: record.BestGame.Correct,
		fieldBestGameTotal:   record.BestGame.Total,
		fieldBestGameDate:    date,
	}
}

// decodeRecord treats missing fields as zero values (first run).
func decodeRecord(fields map[string]string) (domain.StatisticsRecord, error) {
	var record domain.StatisticsRecord
	ints := []struct {
		name string
		dst  *int
	}{
		{fieldGamesCount, &record.GamesCount},
		{fieldTotalCorrect, &record.TotalCorrect},
		{fieldTotalAmount, &record.TotalAmount},
		{fieldBestGameCorrect, &record.BestGame.Correct},
		{fieldBestGameTotal, &record.BestGame.Total},
	}
	for _, f := range ints {
		raw, ok := fields[f.name]
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.StatisticsRecord{}, fmt.Errorf("decode %s: %w", f.name, err)
		}
		*f.dst = v
	}
	if raw := fields[fieldBestGameDate]; raw != "" {
		date, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return domain.StatisticsRecord{}, fmt.Errorf("decode %s: %w", fieldBestGameDate, err)
		}
		record.BestGame.Date = date
	}
	return record, nil
}
