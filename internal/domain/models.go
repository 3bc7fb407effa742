package domain

import "time"

// TotalQuestions is the fixed number of questions in one round.
const TotalQuestions = 10

// Movie is a single entry of the movie catalog questions are generated from.
type Movie struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Rating   float64 `json:"rating"`
	ImageURL string  `json:"imageUrl"`
}

// Question is one yes/no quiz step. It is immutable once created.
type Question struct {
	Image         []byte
	Text          string
	CorrectAnswer bool
}

// Image is a poster resolved for display. An empty Format marks the
// placeholder used when the raw bytes could not be decoded.
type Image struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// IsPlaceholder reports whether the image could not be decoded.
func (i Image) IsPlaceholder() bool {
	return i.Format == ""
}

// RoundViewModel is the display-ready form of a question.
type RoundViewModel struct {
	Image         Image
	PromptText    string
	PositionLabel string
}

// GameResult is one completed round.
type GameResult struct {
	Correct int       `json:"correct"`
	Total   int       `json:"total"`
	Date    time.Time `json:"date"`
}

// Ratio returns correct/total, or 0 for an empty result.
func (g GameResult) Ratio() float64 {
	if g.Total <= 0 {
		return 0
	}
	return float64(g.Correct) / float64(g.Total)
}

// IsBetterThan reports a strict improvement over another result.
// Equal ratios are not better, so the earliest best game is kept.
func (g GameResult) IsBetterThan(other GameResult) bool {
	return g.Ratio() > other.Ratio()
}

// StatisticsRecord is the persisted lifetime aggregate.
type StatisticsRecord struct {
	GamesCount   int        `json:"gamesCount"`
	TotalCorrect int        `json:"totalCorrect"`
	TotalAmount  int        `json:"totalAmount"`
	BestGame     GameResult `json:"bestGame"`
}

// Accuracy returns the lifetime accuracy in percent; 0 before any game.
func (r StatisticsRecord) Accuracy() float64 {
	if r.GamesCount == 0 || r.TotalAmount == 0 {
		return 0
	}
	return 100 * float64(r.TotalCorrect) / float64(r.TotalAmount)
}

// Summary is the end-of-round alert content.
type Summary struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	ButtonText string `json:"buttonText"`
}
