package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"movie-quiz/internal/domain"
	"movie-quiz/internal/infra/sqlite/migrations"
)

// StatisticsStore persists the statistics record as flat key/value rows,
// one per field, in a local SQLite file.
type StatisticsStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies migrations.
func Open(path string) (*StatisticsStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "movie-quiz.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &StatisticsStore{db: db}, nil
}

func (s *StatisticsStore) Close() error {
	return s.db.Close()
}

// DB exposes the handle for migration commands.
func (s *StatisticsStore) DB() *sql.DB {
	return s.db
}

func (s *StatisticsStore) Load(ctx context.Context) (domain.StatisticsRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM statistics`)
	if err != nil {
		return domain.StatisticsRecord{}, fmt.Errorf("query statistics: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.StatisticsRecord{}, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return domain.StatisticsRecord{}, err
	}

	var record domain.StatisticsRecord
	ints := map[string]*int{
		"games_count":       &record.GamesCount,
		"total_correct":     &record.TotalCorrect,
		"total_amount":      &record.TotalAmount,
		"best_game.correct": &record.BestGame.Correct,
		"best_game.total":   &record.BestGame.Total,
	}
	for key, dst := range ints {
		raw, ok := values[key]
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.StatisticsRecord{}, fmt.Errorf("decode %s: %w", key, err)
		}
		*dst = v
	}
	if raw := values["best_game.date"]; raw != "" {
		date, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return domain.StatisticsRecord{}, fmt.Errorf("decode best_game.date: %w", err)
		}
		record.BestGame.Date = date
	}
	return record, nil
}

func (s *StatisticsStore) Save(ctx context.Context, record domain.StatisticsRecord) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	date := ""
	if !record.BestGame.Date.IsZero() {
		date = record.BestGame.Date.UTC().Format(time.RFC3339Nano)
	}
	values := [][2]string{
		{"games_count", strconv.Itoa(record.GamesCount)},
		{"total_correct", strconv.Itoa(record.TotalCorrect)},
		{"total_amount", strconv.Itoa(record.TotalAmount)},
		{"best_game.correct", strconv.Itoa(record.BestGame.Correct)},
		{"best_game.total", strconv.Itoa(record.BestGame.Total)},
		{"best_game.date", date},
	}
	for _, kv := range values {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO statistics(key, value) VALUES(?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("save %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}
