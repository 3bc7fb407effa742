package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"movie-quiz/internal/domain"
)

// QuestionSupply yields questions for the engine. RequestNextQuestion
// returns (nil, nil) when nothing is available.
type QuestionSupply interface {
	LoadData(ctx context.Context) error
	RequestNextQuestion(ctx context.Context) (*domain.Question, error)
}

// MovieRepository returns the movie catalog (cached or straight from a source).
type MovieRepository interface {
	GetMovies(ctx context.Context) ([]domain.Movie, error)
}

// ImageFetcher downloads poster bytes.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

const (
	minRatingThreshold = 7
	maxRatingThreshold = 9
)

// MovieQuestionFactory builds rating questions from a movie catalog.
type MovieQuestionFactory struct {
	movies MovieRepository
	images ImageFetcher

	mu     sync.RWMutex
	loaded []domain.Movie

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewMovieQuestionFactory(movies MovieRepository, images ImageFetcher) *MovieQuestionFactory {
	return NewMovieQuestionFactoryWithRand(movies, images, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewMovieQuestionFactoryWithRand is used by tests for a deterministic pick.
func NewMovieQuestionFactoryWithRand(movies MovieRepository, images ImageFetcher, rnd *rand.Rand) *MovieQuestionFactory {
	return &MovieQuestionFactory{movies: movies, images: images, rnd: rnd}
}

func (f *MovieQuestionFactory) LoadData(ctx context.Context) error {
	movies, err := f.movies.GetMovies(ctx)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return domain.ErrNoMovies
	}

	f.mu.Lock()
	f.loaded = movies
	f.mu.Unlock()
	return nil
}

func (f *MovieQuestionFactory) RequestNextQuestion(ctx context.Context) (*domain.Question, error) {
	f.mu.RLock()
	if len(f.loaded) == 0 {
		f.mu.RUnlock()
		return nil, nil
	}
	f.rndMu.Lock()
	movie := f.loaded[f.rnd.Intn(len(f.loaded))]
	threshold := minRatingThreshold + f.rnd.Intn(maxRatingThreshold-minRatingThreshold+1)
	f.rndMu.Unlock()
	f.mu.RUnlock()

	data, err := f.images.FetchImage(ctx, movie.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImageUnavailable, movie.Title, err)
	}

	return &domain.Question{
		Image:         data,
		Text:          fmt.Sprintf("Is the rating of this movie greater than %d?", threshold),
		CorrectAnswer: movie.Rating > float64(threshold),
	}, nil
}
