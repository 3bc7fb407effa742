package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"movie-quiz/internal/app"
	"movie-quiz/internal/domain"
)

// Callback data carried by inline buttons.
const (
	callbackYes     = "yes"
	callbackNo      = "no"
	callbackRestart = "restart"
	callbackRetry   = "retry"
)

// Sender is the subset of *tgbotapi.BotAPI the bot needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// chatPresenter renders one chat's quiz. Calls arrive on the engine's
// dispatcher, so questionMessageID needs no lock.
type chatPresenter struct {
	api               Sender
	chatID            int64
	logger            zerolog.Logger
	questionMessageID int
}

func answerKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes", callbackYes),
			tgbotapi.NewInlineKeyboardButtonData("No", callbackNo),
		),
	)
}

func singleButton(text, data string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(text, data)),
	)
}

func (p *chatPresenter) Render(vm domain.RoundViewModel) {
	caption := fmt.Sprintf("%s\n%s", vm.PositionLabel, vm.PromptText)

	var msg tgbotapi.Chattable
	if vm.Image.IsPlaceholder() {
		text := tgbotapi.NewMessage(p.chatID, caption)
		text.ReplyMarkup = answerKeyboard()
		msg = text
	} else {
		photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FileBytes{Name: "poster." + vm.Image.Format, Bytes: vm.Image.Data})
		photo.Caption = caption
		photo.ReplyMarkup = answerKeyboard()
		msg = photo
	}

	sent, err := p.api.Send(msg)
	if err != nil {
		p.logger.Error().Err(err).Msg("send question")
		return
	}
	p.questionMessageID = sent.MessageID
}

func (p *chatPresenter) RenderSummary(summary domain.Summary) {
	msg := tgbotapi.NewMessage(p.chatID, summary.Title+"\n\n"+summary.Message)
	msg.ReplyMarkup = singleButton(summary.ButtonText, callbackRestart)
	p.send(msg, "send summary")
}

func (p *chatPresenter) SetImageFeedback(isCorrect bool) {
	text := "❌ Wrong!"
	if isCorrect {
		text = "✅ Correct!"
	}
	p.send(tgbotapi.NewMessage(p.chatID, text), "send feedback")
}

// SetInputEnabled(false) strips the Yes/No keyboard from the question on
// screen; enabling happens when the next question is sent with its keyboard.
func (p *chatPresenter) SetInputEnabled(enabled bool) {
	if enabled || p.questionMessageID == 0 {
		return
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(p.chatID, p.questionMessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	if _, err := p.api.Request(edit); err != nil {
		p.logger.Debug().Err(err).Msg("remove answer keyboard")
	}
	p.questionMessageID = 0
}

func (p *chatPresenter) ShowLoading() {
	if _, err := p.api.Request(tgbotapi.NewChatAction(p.chatID, tgbotapi.ChatUploadPhoto)); err != nil {
		p.logger.Debug().Err(err).Msg("send chat action")
	}
}

func (p *chatPresenter) HideLoading() {}

func (p *chatPresenter) ShowError(message, retryLabel string) {
	msg := tgbotapi.NewMessage(p.chatID, app.ErrorTitle+"\n\n"+message)
	msg.ReplyMarkup = singleButton(retryLabel, callbackRetry)
	p.send(msg, "send error")
}

func (p *chatPresenter) send(msg tgbotapi.Chattable, what string) {
	if _, err := p.api.Send(msg); err != nil {
		p.logger.Error().Err(err).Msg(what)
	}
}
