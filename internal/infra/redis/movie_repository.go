package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"movie-quiz/internal/domain"
)

// MovieLoader fetches the movie catalog from a source (IMDb API, Postgres).
type MovieLoader interface {
	LoadMovies(ctx context.Context) ([]domain.Movie, error)
}

// MovieRepository caches the catalog in Redis as a JSON blob and falls back
// to the loader on a miss. Stored as: SET movie_quiz:movies:top250 <json> EX ttl
type MovieRepository struct {
	client *redis.Client
	loader MovieLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewMovieRepository(client *redis.Client, loader MovieLoader, ttl time.Duration) *MovieRepository {
	return &MovieRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *MovieRepository) GetMovies(ctx context.Context) ([]domain.Movie, error) {
	if movies, ok := r.cached(ctx); ok {
		return movies, nil
	}

	result, err, _ := r.sf.Do(r.key(), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if movies, ok := r.cached(ctx); ok {
			return movies, nil
		}

		movies, err := r.loader.LoadMovies(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(movies)
		if err != nil {
			return nil, err
		}
		// best-effort: a failed write only costs a reload next time
		_ = r.client.Set(ctx, r.key(), data, r.ttlWithJitter()).Err()
		return movies, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Movie), nil
}

// Invalidate drops the cached catalog.
func (r *MovieRepository) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, r.key()).Err()
}

func (r *MovieRepository) cached(ctx context.Context) ([]domain.Movie, bool) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if err != nil {
		// redis.Nil is a plain miss; other errors fall through to the loader
		return nil, false
	}
	var movies []domain.Movie
	if err := json.Unmarshal(data, &movies); err != nil || len(movies) == 0 {
		return nil, false
	}
	return movies, true
}

func (r *MovieRepository) key() string {
	return "movie_quiz:movies:top250"
}

func (r *MovieRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
