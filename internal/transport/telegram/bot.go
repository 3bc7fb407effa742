package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"movie-quiz/internal/app"
)

// Bot runs one quiz engine per chat.
type Bot struct {
	api       Sender
	sessions  app.SessionRepository
	newEngine app.EngineFactory
	stats     *app.StatisticsTracker
	logger    zerolog.Logger
}

func NewBot(api Sender, sessions app.SessionRepository, newEngine app.EngineFactory, stats *app.StatisticsTracker, logger zerolog.Logger) *Bot {
	return &Bot{
		api:       api,
		sessions:  sessions,
		newEngine: newEngine,
		stats:     stats,
		logger:    logger,
	}
}

// Run handles updates until ctx is done or the channel closes. Engines are
// bound to ctx.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start", "play":
		engine, isNew := b.session(ctx, chatID)
		if isNew {
			engine.Start()
			return
		}
		engine.Restart()
	case "stats":
		b.sendStats(chatID)
	default:
		b.sendText(chatID, "Send /start to play the movie quiz or /stats for your record.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Debug().Err(err).Msg("answer callback")
	}
	if cb.Message == nil {
		return
	}

	engine, isNew := b.session(ctx, cb.Message.Chat.ID)
	if isNew {
		// process restarted since the keyboard was sent
		engine.Start()
		return
	}
	switch cb.Data {
	case callbackYes:
		engine.SubmitAnswer(true)
	case callbackNo:
		engine.SubmitAnswer(false)
	case callbackRestart:
		engine.Restart()
	case callbackRetry:
		engine.Retry()
	}
}

func (b *Bot) session(ctx context.Context, chatID int64) (*app.QuizEngine, bool) {
	return b.sessions.GetOrCreate(strconv.FormatInt(chatID, 10), func() *app.QuizEngine {
		logger := b.logger.With().Int64("chat", chatID).Str("session", uuid.NewString()).Logger()
		logger.Info().Msg("session started")
		return b.newEngine(ctx, &chatPresenter{api: b.api, chatID: chatID, logger: logger})
	})
}

func (b *Bot) sendStats(chatID int64) {
	if b.stats == nil {
		b.sendText(chatID, "Statistics are not available.")
		return
	}
	record := b.stats.Snapshot()
	b.sendText(chatID, fmt.Sprintf("Quizzes played: %d\nRecord: %d/%d\nAverage accuracy: %.2f%%",
		record.GamesCount, record.BestGame.Correct, record.BestGame.Total, record.Accuracy()))
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error().Err(err).Msg("send message")
	}
}
