package domain

import "errors"

var (
	// ErrSupplyFailure wraps any failure of the question supply (network, decoding).
	ErrSupplyFailure = errors.New("question supply failure")
	// ErrNoMovies is returned when the movie source yields an empty catalog.
	ErrNoMovies = errors.New("no movies available")
	// ErrImageUnavailable indicates a poster could not be downloaded.
	ErrImageUnavailable = errors.New("movie image unavailable")
	// ErrInvalidResult rejects a round result outside 0 <= correct <= total, total > 0.
	ErrInvalidResult = errors.New("invalid game result")
	// ErrStatisticsUnavailable indicates the statistics store could not be read or written.
	ErrStatisticsUnavailable = errors.New("statistics store unavailable")
)
