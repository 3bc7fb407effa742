package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"movie-quiz/internal/domain"
)

// MovieLoader loads a curated movie catalog from Postgres.
type MovieLoader struct {
	pool *pgxpool.Pool
}

func NewMovieLoader(pool *pgxpool.Pool) *MovieLoader {
	return &MovieLoader{pool: pool}
}

func (l *MovieLoader) LoadMovies(ctx context.Context) ([]domain.Movie, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, title, rating, image_url FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		var m domain.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Rating, &m.ImageURL); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	if len(movies) == 0 {
		return nil, domain.ErrNoMovies
	}
	return movies, nil
}

// SaveMovies upserts movies, used to seed the catalog.
func (l *MovieLoader) SaveMovies(ctx context.Context, movies []domain.Movie) error {
	for _, m := range movies {
		_, err := l.pool.Exec(ctx,
			`INSERT INTO movies (id, title, rating, image_url) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, rating=EXCLUDED.rating, image_url=EXCLUDED.image_url`,
			m.ID, m.Title, m.Rating, m.ImageURL)
		if err != nil {
			return fmt.Errorf("save movie %s: %w", m.ID, err)
		}
	}
	return nil
}
