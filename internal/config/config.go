package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Movie sources.
const (
	SourceIMDb     = "imdb"
	SourcePostgres = "postgres"
	SourceStatic   = "static"
)

// Statistics stores.
const (
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	App struct {
		Name string `yaml:"name" env:"QUIZ_APP_NAME"`
		Env  string `yaml:"env" env:"QUIZ_APP_ENV"`
	} `yaml:"app"`
	Log struct {
		Level string `yaml:"level" env:"QUIZ_LOG_LEVEL"`
	} `yaml:"log"`
	Server struct {
		Port string `yaml:"port" env:"QUIZ_SERVER_PORT"`
	} `yaml:"server"`
	IMDb struct {
		BaseURL string `yaml:"base_url" env:"QUIZ_IMDB_BASE_URL"`
		APIKey  string `yaml:"api_key" env:"QUIZ_IMDB_API_KEY"`
		Timeout string `yaml:"timeout" env:"QUIZ_IMDB_TIMEOUT"`
	} `yaml:"imdb"`
	Movies struct {
		Source string `yaml:"source" env:"QUIZ_MOVIES_SOURCE"`
		TTL    string `yaml:"ttl" env:"QUIZ_MOVIES_TTL"`
	} `yaml:"movies"`
	Redis struct {
		Addr     string `yaml:"addr" env:"QUIZ_REDIS_ADDR"`
		Password string `yaml:"password" env:"QUIZ_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"QUIZ_REDIS_DB"`
		TTL      string `yaml:"ttl" env:"QUIZ_REDIS_TTL"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url" env:"QUIZ_POSTGRES_URL"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path" env:"QUIZ_SQLITE_PATH"`
	} `yaml:"sqlite"`
	Statistics struct {
		Store string `yaml:"store" env:"QUIZ_STATISTICS_STORE"`
	} `yaml:"statistics"`
	Quiz struct {
		FeedbackDelay string `yaml:"feedback_delay" env:"QUIZ_FEEDBACK_DELAY"`
	} `yaml:"quiz"`
	Telegram struct {
		Token string `yaml:"token" env:"QUIZ_TELEGRAM_TOKEN"`
		Debug bool   `yaml:"debug" env:"QUIZ_TELEGRAM_DEBUG"`
	} `yaml:"telegram"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.App.Name = "movie-quiz"
	cfg.App.Env = "development"
	cfg.Log.Level = "info"
	cfg.Server.Port = "8080"
	cfg.IMDb.BaseURL = "https://tv-api.com/en"
	cfg.IMDb.Timeout = "10s"
	cfg.Movies.Source = SourceIMDb
	cfg.Movies.TTL = "1h"
	cfg.Redis.TTL = "1h"
	cfg.SQLite.Path = "movie-quiz.db"
	cfg.Statistics.Store = StoreSQLite
	cfg.Quiz.FeedbackDelay = "1s"
	return cfg
}

// Load reads YAML config from path on top of the defaults and then applies
// QUIZ_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
