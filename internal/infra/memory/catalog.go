package memory

import (
	"context"

	"movie-quiz/internal/domain"
)

// SampleMovies is the built-in catalog for offline play.
func SampleMovies() []domain.Movie {
	return []domain.Movie{
		{ID: "tt0111161", Title: "The Shawshank Redemption", Rating: 9.3},
		{ID: "tt0068646", Title: "The Godfather", Rating: 9.2},
		{ID: "tt0468569", Title: "The Dark Knight", Rating: 9.0},
		{ID: "tt0108052", Title: "Schindler's List", Rating: 9.0},
		{ID: "tt0167260", Title: "The Lord of the Rings: The Return of the King", Rating: 9.0},
		{ID: "tt0110912", Title: "Pulp Fiction", Rating: 8.9},
		{ID: "tt1375666", Title: "Inception", Rating: 8.8},
		{ID: "tt0816692", Title: "Interstellar", Rating: 8.7},
		{ID: "tt1877830", Title: "The Batman", Rating: 7.8},
		{ID: "tt1201607", Title: "Harry Potter and the Deathly Hallows: Part 2", Rating: 8.1},
		{ID: "tt0117500", Title: "The Rock", Rating: 7.4},
		{ID: "tt0120737", Title: "The Lord of the Rings: The Fellowship of the Ring", Rating: 8.9},
		{ID: "tt0330373", Title: "Harry Potter and the Goblet of Fire", Rating: 7.7},
		{ID: "tt0369610", Title: "Jurassic World", Rating: 6.9},
		{ID: "tt1300854", Title: "Iron Man 3", Rating: 7.1},
		{ID: "tt0399201", Title: "The Island", Rating: 6.8},
	}
}

// NoImageFetcher serves no poster bytes; questions render with a placeholder.
type NoImageFetcher struct{}

func (NoImageFetcher) FetchImage(context.Context, string) ([]byte, error) {
	return nil, nil
}
