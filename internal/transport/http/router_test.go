package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-quiz/internal/app"
	"movie-quiz/internal/infra/memory"
)

func TestStatisticsEndpoint(t *testing.T) {
	tracker, err := app.NewStatisticsTracker(context.Background(), memory.NewStatisticsStore())
	require.NoError(t, err)
	_, err = tracker.Record(context.Background(), 3, 10)
	require.NoError(t, err)
	_, err = tracker.Record(context.Background(), 7, 10)
	require.NoError(t, err)

	router := NewRouter(RouterDeps{Logger: zerolog.Nop(), Stats: tracker, Sessions: memory.NewSessionStore()})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body statisticsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.GamesCount)
	assert.Equal(t, 10, body.TotalCorrect)
	assert.Equal(t, 20, body.TotalAmount)
	assert.Equal(t, 7, body.BestGame.Correct)
	assert.InDelta(t, 50.0, body.AverageAccuracy, 1e-9)
	assert.Equal(t, 0, body.ActiveSessions)
}

func TestMetricsRouteOptional(t *testing.T) {
	router := NewRouter(RouterDeps{Logger: zerolog.Nop()})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	router = NewRouter(RouterDeps{Logger: zerolog.Nop(), Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
