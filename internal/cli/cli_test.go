package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-quiz/internal/config"
	"movie-quiz/internal/domain"
	"movie-quiz/internal/logging"
	"movie-quiz/internal/metrics"
)

func writeConfig(t *testing.T, dbPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "movies:\n  source: static\nstatistics:\n  store: sqlite\nsqlite:\n  path: " + dbPath + "\nquiz:\n  feedback_delay: 1ms\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
	return path
}

func runCLI(t *testing.T, input string, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestPlayRecordsStatisticsInSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stats.db")
	cfgPath := writeConfig(t, dbPath)

	answers := strings.Repeat("y\n", domain.TotalQuestions) + "n\n"
	out := runCLI(t, answers, "--config", cfgPath, "play")
	assert.Contains(t, out, "This round is over!")
	assert.Contains(t, out, "Quizzes played: 1")

	stats := runCLI(t, "", "--config", cfgPath, "stats")
	assert.Contains(t, stats, "Quizzes played: 1")

	runCLI(t, "", "--config", cfgPath, "stats", "--reset")
	stats = runCLI(t, "", "--config", cfgPath, "stats")
	assert.Contains(t, stats, "Quizzes played: 0")
	assert.Contains(t, stats, "Average accuracy: 0.00%")
}

func TestMigrateSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stats.db")
	cfgPath := writeConfig(t, dbPath)

	runCLI(t, "", "--config", cfgPath, "migrate")
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestBuildDepsRejectsMisconfiguration(t *testing.T) {
	cfg := config.Default()
	cfg.Statistics.Store = config.StoreMemory
	cfg.Movies.Source = config.SourcePostgres
	_, err := buildDeps(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Statistics.Store = config.StoreRedis
	_, err = buildStatistics(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Statistics.Store = "floppy"
	_, err = buildStatistics(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestBuildDepsStaticMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Statistics.Store = config.StoreMemory
	cfg.Movies.Source = config.SourceStatic

	d, err := buildDeps(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer d.Close()

	movies, err := d.movies.GetMovies(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, movies)
	assert.NotNil(t, d.sessionStore())
}

func TestRootStoresConfiguredLoggerInContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "log:\n  level: warn\nmovies:\n  source: static\nstatistics:\n  store: memory\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	var got zerolog.Logger
	cmd := newRootCmd()
	cmd.AddCommand(&cobra.Command{
		Use: "whoami",
		RunE: func(cmd *cobra.Command, args []string) error {
			got = logging.FromContext(cmd.Context())
			return nil
		},
	})
	cmd.SetArgs([]string{"--config", path, "whoami"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, zerolog.WarnLevel, got.GetLevel())
}

func writeDotEnv(t *testing.T, key, value string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"="+value+"\n"), 0o600))
	// godotenv never overrides variables that are already set
	prev, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
	return path
}

func TestLoadDotEnvOutsideProduction(t *testing.T) {
	path := writeDotEnv(t, "QUIZ_DOTENV_CHECK", "loaded")

	loadDotEnv("development", path)

	assert.Equal(t, "loaded", os.Getenv("QUIZ_DOTENV_CHECK"))
}

func TestLoadDotEnvSkippedInProduction(t *testing.T) {
	path := writeDotEnv(t, "QUIZ_DOTENV_CHECK", "loaded")

	loadDotEnv("production", path)

	_, ok := os.LookupEnv("QUIZ_DOTENV_CHECK")
	assert.False(t, ok)
}

func TestBotRouterServesMetricsWithoutWebsocket(t *testing.T) {
	cfg := config.Default()
	cfg.Statistics.Store = config.StoreMemory
	cfg.Movies.Source = config.SourceStatic
	d, err := buildDeps(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer d.Close()

	recorder := metrics.NewRecorder()
	recorder.RoundCompleted(6, 10)
	router := newBotRouter(zerolog.Nop(), d.stats, d.sessionStore(), recorder)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "movie_quiz_rounds_total 1")
	assert.Equal(t, http.StatusOK, get("/healthz").Code)
	assert.Equal(t, http.StatusOK, get("/api/statistics").Code)
	assert.Equal(t, http.StatusNotFound, get("/ws").Code)
}

func TestNewHTTPServerDefaultsPort(t *testing.T) {
	assert.Equal(t, ":8080", newHTTPServer("", http.NotFoundHandler()).Addr)
	assert.Equal(t, ":9090", newHTTPServer("9090", http.NotFoundHandler()).Addr)
}
