package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"movie-quiz/internal/config"
	"movie-quiz/internal/logging"
	"movie-quiz/internal/metrics"
	transport "movie-quiz/internal/transport/http"
)

const defaultPort = "8080"

func newStartCmd(opts *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the websocket quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				opts.cfg.Server.Port = port
			}
			return runServer(cmd.Context(), opts.cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", os.Getenv("PORT"), "port to listen on (overrides server.port)")
	return cmd
}

func runServer(ctx context.Context, cfg config.Config) error {
	logger := logging.FromContext(ctx)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	recorder := metrics.NewRecorder()
	sessions := d.sessionStore()
	ws := transport.NewWSHandler(sessions, d.engineFactory(recorder), logger)
	router := transport.NewRouter(transport.RouterDeps{
		Logger:   logger,
		WS:       ws,
		Stats:    d.stats,
		Sessions: sessions,
		Metrics:  recorder.Handler(),
	})

	g, gctx := errgroup.WithContext(ctx)
	serveHTTP(gctx, g, newHTTPServer(cfg.Server.Port, router), logger)
	return g.Wait()
}

func newHTTPServer(port string, handler http.Handler) *http.Server {
	if port == "" {
		port = defaultPort
	}
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// serveHTTP runs server on g until ctx is done, then shuts it down.
func serveHTTP(ctx context.Context, g *errgroup.Group, server *http.Server, logger zerolog.Logger) {
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
}
