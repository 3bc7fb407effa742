package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"movie-quiz/internal/domain"
)

// MovieLoader fetches the movie catalog from a source (IMDb API, Postgres).
type MovieLoader interface {
	LoadMovies(ctx context.Context) ([]domain.Movie, error)
}

const catalogKey = "top250"

// MovieRepository caches the catalog with TTL to avoid repeated source hits.
type MovieRepository struct {
	loader MovieLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	movies    []domain.Movie
	expiresAt time.Time
}

func NewMovieRepository(loader MovieLoader, ttl time.Duration) *MovieRepository {
	return &MovieRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *MovieRepository) GetMovies(ctx context.Context) ([]domain.Movie, error) {
	if movies, ok := r.cached(r.clock()); ok {
		return movies, nil
	}

	result, err, _ := r.sf.Do(catalogKey, func() (interface{}, error) {
		now := r.clock()
		if movies, ok := r.cached(now); ok {
			return movies, nil
		}

		movies, err := r.loader.LoadMovies(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.movies = movies
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return movies, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Movie), nil
}

func (r *MovieRepository) cached(now time.Time) ([]domain.Movie, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.movies != nil && r.expiresAt.After(now) {
		return r.movies, true
	}
	return nil, false
}

func (r *MovieRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticMovieLoader serves a fixed catalog (offline play, tests).
type StaticMovieLoader struct {
	movies []domain.Movie
}

func NewStaticMovieLoader(movies []domain.Movie) *StaticMovieLoader {
	return &StaticMovieLoader{movies: movies}
}

func (l *StaticMovieLoader) LoadMovies(context.Context) ([]domain.Movie, error) {
	if len(l.movies) == 0 {
		return nil, domain.ErrNoMovies
	}
	out := make([]domain.Movie, len(l.movies))
	copy(out, l.movies)
	return out, nil
}
