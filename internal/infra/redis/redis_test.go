package redis

import (
	"context"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"movie-quiz/internal/app"
	"movie-quiz/internal/domain"
	"movie-quiz/internal/infra/memory"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

type countingLoader struct {
	mu     sync.Mutex
	calls  int
	movies []domain.Movie
	err    error
}

func (l *countingLoader) LoadMovies(context.Context) ([]domain.Movie, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.movies, l.err
}

func sampleMovies() []domain.Movie {
	return []domain.Movie{
		{ID: "tt0111161", Title: "The Shawshank Redemption", Rating: 9.2, ImageURL: "https://example.com/1._V1_.jpg"},
		{ID: "tt0068646", Title: "The Godfather", Rating: 9.1, ImageURL: "https://example.com/2._V1_.jpg"},
	}
}

func newIdleEngine(t *testing.T) *app.QuizEngine {
	t.Helper()
	tracker, err := app.NewStatisticsTracker(context.Background(), memory.NewStatisticsStore())
	if err != nil {
		t.Fatalf("tracker: %v", err)
	}
	factory := app.NewMovieQuestionFactory(memory.NewMovieRepository(memory.NewStaticMovieLoader(sampleMovies()), 0), nil)
	return app.NewQuizEngine(context.Background(), factory, tracker, app.NopPresenter{},
		app.WithDispatcher(app.DispatchFunc(func(fn func()) { fn() })))
}
