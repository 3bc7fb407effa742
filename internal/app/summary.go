package app

import (
	"fmt"
	"strings"

	"movie-quiz/internal/domain"
)

const (
	SummaryTitle      = "This round is over!"
	SummaryButtonText = "Play again"
	ErrorTitle        = "Error"
	RetryButtonText   = "Try again"

	SummaryDateLayout = "02.01.06 15:04"
)

// BuildSummary renders the end-of-round alert for the round just recorded.
func BuildSummary(correct, total int, record domain.StatisticsRecord) domain.Summary {
	best := record.BestGame
	lines := []string{
		fmt.Sprintf("Your result: %d/%d", correct, total),
		fmt.Sprintf("Quizzes played: %d", record.GamesCount),
		fmt.Sprintf("Record: %d/%d (%s)", best.Correct, best.Total, best.Date.Local().Format(SummaryDateLayout)),
		fmt.Sprintf("Average accuracy: %.2f%%", record.Accuracy()),
	}
	return domain.Summary{
		Title:      SummaryTitle,
		Message:    strings.Join(lines, "\n"),
		ButtonText: SummaryButtonText,
	}
}
