package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"movie-quiz/internal/domain"
)

// StatisticsStore keeps the statistics record as key/value rows in Postgres.
type StatisticsStore struct {
	pool *pgxpool.Pool
}

func NewStatisticsStore(pool *pgxpool.Pool) *StatisticsStore {
	return &StatisticsStore{pool: pool}
}

func (s *StatisticsStore) Load(ctx context.Context) (domain.StatisticsRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT key, value FROM statistics`)
	if err != nil {
		return domain.StatisticsRecord{}, fmt.Errorf("load statistics: %w", err)
	}
	defer rows.Close()

	var record domain.StatisticsRecord
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.StatisticsRecord{}, fmt.Errorf("scan statistics: %w", err)
		}
		if err := applyField(&record, key, value); err != nil {
			return domain.StatisticsRecord{}, err
		}
	}
	return record, rows.Err()
}

func (s *StatisticsStore) Save(ctx context.Context, record domain.StatisticsRecord) error {
	date := ""
	if !record.BestGame.Date.IsZero() {
		date = record.BestGame.Date.UTC().Format(time.RFC3339Nano)
	}
	return s.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		fields := [][2]string{
			{"games_count", strconv.Itoa(record.GamesCount)},
			{"total_correct", strconv.Itoa(record.TotalCorrect)},
			{"total_amount", strconv.Itoa(record.TotalAmount)},
			{"best_game.correct", strconv.Itoa(record.BestGame.Correct)},
			{"best_game.total", strconv.Itoa(record.BestGame.Total)},
			{"best_game.date", date},
		}
		for _, f := range fields {
			_, err := tx.Exec(ctx,
				`INSERT INTO statistics (key, value) VALUES ($1, $2)
				 ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()`, f[0], f[1])
			if err != nil {
				return fmt.Errorf("save %s: %w", f[0], err)
			}
		}
		return nil
	})
}

func applyField(record *domain.StatisticsRecord, key, value string) error {
	if key == "best_game.date" {
		if value == "" {
			return nil
		}
		date, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		record.BestGame.Date = date
		return nil
	}

	var dst *int
	switch key {
	case "games_count":
		dst = &record.GamesCount
	case "total_correct":
		dst = &record.TotalCorrect
	case "total_amount":
		dst = &record.TotalAmount
	case "best_game.correct":
		dst = &record.BestGame.Correct
	case "best_game.total":
		dst = &record.BestGame.Total
	default:
		return nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	*dst = v
	return nil
}
