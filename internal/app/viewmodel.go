package app

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"movie-quiz/internal/domain"
)

// ResolveImage decodes the poster header. Undecodable data resolves to an
// empty placeholder rather than an error.
func ResolveImage(data []byte) domain.Image {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.Image{}
	}
	return domain.Image{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// Convert derives the view model for the question at index (zero-based).
func Convert(question domain.Question, index, total int) domain.RoundViewModel {
	return domain.RoundViewModel{
		Image:         ResolveImage(question.Image),
		PromptText:    question.Text,
		PositionLabel: fmt.Sprintf("%d/%d", index+1, total),
	}
}
