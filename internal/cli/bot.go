package cli

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"movie-quiz/internal/app"
	"movie-quiz/internal/logging"
	"movie-quiz/internal/metrics"
	transport "movie-quiz/internal/transport/http"
	"movie-quiz/internal/transport/telegram"
)

func newBotCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the quiz as a Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Telegram.Token == "" {
				return errors.New("telegram token not configured (QUIZ_TELEGRAM_TOKEN)")
			}
			logger := logging.FromContext(cmd.Context())
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := buildDeps(ctx, opts.cfg, logger)
			if err != nil {
				return err
			}
			defer d.Close()

			api, err := tgbotapi.NewBotAPI(opts.cfg.Telegram.Token)
			if err != nil {
				return err
			}
			api.Debug = opts.cfg.Telegram.Debug
			logger.Info().Str("account", api.Self.UserName).Msg("telegram bot authorised")

			u := tgbotapi.NewUpdate(0)
			u.Timeout = 60
			updates := api.GetUpdatesChan(u)
			defer api.StopReceivingUpdates()

			recorder := metrics.NewRecorder()
			sessions := d.sessionStore()
			bot := telegram.NewBot(api, sessions, d.engineFactory(recorder), d.stats, logger)

			g, gctx := errgroup.WithContext(ctx)
			router := newBotRouter(logger, d.stats, sessions, recorder)
			serveHTTP(gctx, g, newHTTPServer(opts.cfg.Server.Port, router), logger)
			g.Go(func() error {
				defer stop()
				return bot.Run(gctx, updates)
			})
			return g.Wait()
		},
	}
}

// newBotRouter exposes health, statistics and metrics next to the bot. There
// is no websocket endpoint in bot mode.
func newBotRouter(logger zerolog.Logger, stats *app.StatisticsTracker, sessions app.SessionRepository, recorder *metrics.Recorder) http.Handler {
	return transport.NewRouter(transport.RouterDeps{
		Logger:   logger,
		Stats:    stats,
		Sessions: sessions,
		Metrics:  recorder.Handler(),
	})
}
