package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"movie-quiz/internal/app"
	"movie-quiz/internal/config"
	"movie-quiz/internal/infra/imdb"
	"movie-quiz/internal/infra/memory"
	pgstore "movie-quiz/internal/infra/postgres"
	redisstore "movie-quiz/internal/infra/redis"
	"movie-quiz/internal/infra/sqlite"
)

// deps holds the shared collaborators every front end builds engines from.
type deps struct {
	cfg     config.Config
	logger  zerolog.Logger
	redis   *redis.Client
	pool    *pgxpool.Pool
	stats   *app.StatisticsTracker
	movies  app.MovieRepository
	images  app.ImageFetcher
	closers []func()
}

// buildStatistics opens only what the statistics tracker needs.
func buildStatistics(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*deps, error) {
	d := &deps{cfg: cfg, logger: logger}

	if cfg.Redis.Addr != "" {
		d.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		d.closers = append(d.closers, func() { _ = d.redis.Close() })
	}
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		d.pool = pool
		d.closers = append(d.closers, pool.Close)
	}

	store, err := d.statisticsStore()
	if err != nil {
		d.Close()
		return nil, err
	}
	tracker, err := app.NewStatisticsTracker(ctx, store)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.stats = tracker
	logger.Debug().Str("store", cfg.Statistics.Store).Msg("statistics loaded")
	return d, nil
}

// buildDeps also wires the question supply.
func buildDeps(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*deps, error) {
	d, err := buildStatistics(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	timeout := config.TTLDuration(cfg.IMDb.Timeout, 10*time.Second)
	client := imdb.NewClient(cfg.IMDb.BaseURL, cfg.IMDb.APIKey, &http.Client{Timeout: timeout})

	var loader memory.MovieLoader
	switch cfg.Movies.Source {
	case config.SourceIMDb:
		if cfg.IMDb.APIKey == "" {
			logger.Warn().Msg("imdb api key is empty; requests will likely be rejected")
		}
		loader = client
		d.images = client
	case config.SourcePostgres:
		if d.pool == nil {
			d.Close()
			return nil, fmt.Errorf("movies source postgres requires postgres.url")
		}
		loader = pgstore.NewMovieLoader(d.pool)
		d.images = client
	case config.SourceStatic:
		loader = memory.NewStaticMovieLoader(memory.SampleMovies())
		d.images = memory.NoImageFetcher{}
	default:
		d.Close()
		return nil, fmt.Errorf("unknown movies source %q", cfg.Movies.Source)
	}

	ttl := config.TTLDuration(cfg.Movies.TTL, time.Hour)
	if d.redis != nil {
		d.movies = redisstore.NewMovieRepository(d.redis, loader, ttl)
	} else {
		d.movies = memory.NewMovieRepository(loader, ttl)
	}
	return d, nil
}

func (d *deps) statisticsStore() (app.StatisticsStore, error) {
	switch d.cfg.Statistics.Store {
	case config.StoreSQLite:
		store, err := sqlite.Open(d.cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		d.closers = append(d.closers, func() { _ = store.Close() })
		return store, nil
	case config.StoreRedis:
		if d.redis == nil {
			return nil, fmt.Errorf("statistics store redis requires redis.addr")
		}
		return redisstore.NewStatisticsStore(d.redis), nil
	case config.StorePostgres:
		if d.pool == nil {
			return nil, fmt.Errorf("statistics store postgres requires postgres.url")
		}
		return pgstore.NewStatisticsStore(d.pool), nil
	case config.StoreMemory:
		return memory.NewStatisticsStore(), nil
	default:
		return nil, fmt.Errorf("unknown statistics store %q", d.cfg.Statistics.Store)
	}
}

// sessionStore prefers Redis liveness markers when Redis is configured.
func (d *deps) sessionStore() app.SessionRepository {
	if d.redis != nil {
		return redisstore.NewSessionStore(d.redis, config.TTLDuration(d.cfg.Redis.TTL, time.Hour))
	}
	return memory.NewSessionStore()
}

// engineFactory builds one engine per session; each gets its own question
// factory so random picks do not interleave across players.
func (d *deps) engineFactory(observer app.Observer) app.EngineFactory {
	delay := config.TTLDuration(d.cfg.Quiz.FeedbackDelay, app.DefaultFeedbackDelay)
	return func(ctx context.Context, presenter app.Presenter) *app.QuizEngine {
		opts := []app.EngineOption{
			app.WithFeedbackDelay(delay),
			app.WithLogger(d.logger),
		}
		if observer != nil {
			opts = append(opts, app.WithObserver(observer))
		}
		supply := app.NewMovieQuestionFactory(d.movies, d.images)
		return app.NewQuizEngine(ctx, supply, d.stats, presenter, opts...)
	}
}

// Close releases connections in reverse order.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}
