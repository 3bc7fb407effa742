package app

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-quiz/internal/domain"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvertBuildsPositionLabel(t *testing.T) {
	q := domain.Question{Image: pngBytes(t, 4, 6), Text: "Is it good?", CorrectAnswer: true}

	vm := Convert(q, 4, domain.TotalQuestions)

	assert.Equal(t, "5/10", vm.PositionLabel)
	assert.Equal(t, "Is it good?", vm.PromptText)
	assert.Equal(t, "png", vm.Image.Format)
	assert.Equal(t, 4, vm.Image.Width)
	assert.Equal(t, 6, vm.Image.Height)
	assert.False(t, vm.Image.IsPlaceholder())
}

func TestResolveImageFallsBackToPlaceholder(t *testing.T) {
	img := ResolveImage([]byte("definitely not an image"))

	assert.True(t, img.IsPlaceholder())
	assert.Empty(t, img.Data)
}
