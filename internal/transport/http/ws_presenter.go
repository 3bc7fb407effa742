package http

import (
	"encoding/base64"

	"movie-quiz/internal/domain"
)

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type questionPayload struct {
	Position string `json:"position"`
	Prompt   string `json:"prompt"`
	Image    string `json:"image"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type feedbackPayload struct {
	Correct bool `json:"correct"`
}

type inputPayload struct {
	Enabled bool `json:"enabled"`
}

type loadingPayload struct {
	Visible bool `json:"visible"`
}

type errorPayload struct {
	Message    string `json:"message"`
	ButtonText string `json:"buttonText,omitempty"`
}

// wsPresenter turns engine calls into outbound messages. The connection's
// writer goroutine is the only one touching the socket.
type wsPresenter struct {
	send chan<- outboundMessage
	stop <-chan struct{}
}

func (p *wsPresenter) push(typ string, payload any) {
	select {
	case p.send <- outboundMessage{Type: typ, Payload: payload}:
	case <-p.stop:
	}
}

func (p *wsPresenter) Render(vm domain.RoundViewModel) {
	p.push("question", questionPayload{
		Position: vm.PositionLabel,
		Prompt:   vm.PromptText,
		Image:    dataURL(vm.Image),
		Width:    vm.Image.Width,
		Height:   vm.Image.Height,
	})
}

func (p *wsPresenter) RenderSummary(summary domain.Summary) {
	p.push("summary", summary)
}

func (p *wsPresenter) SetImageFeedback(isCorrect bool) {
	p.push("feedback", feedbackPayload{Correct: isCorrect})
}

func (p *wsPresenter) SetInputEnabled(enabled bool) {
	p.push("input", inputPayload{Enabled: enabled})
}

func (p *wsPresenter) ShowLoading() {
	p.push("loading", loadingPayload{Visible: true})
}

func (p *wsPresenter) HideLoading() {
	p.push("loading", loadingPayload{Visible: false})
}

func (p *wsPresenter) ShowError(message, retryLabel string) {
	p.push("error", errorPayload{Message: message, ButtonText: retryLabel})
}

func dataURL(img domain.Image) string {
	if img.IsPlaceholder() {
		return ""
	}
	return "data:image/" + img.Format + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
