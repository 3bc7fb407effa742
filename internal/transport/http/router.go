package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"movie-quiz/internal/app"
	"movie-quiz/internal/domain"
)

// RouterDeps lists what the HTTP surface serves. Metrics may be nil.
type RouterDeps struct {
	Logger   zerolog.Logger
	WS       *WSHandler
	Stats    *app.StatisticsTracker
	Sessions app.SessionRepository
	Metrics  http.Handler
}

// NewRouter mounts /healthz, /metrics, /api/statistics and /ws.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	r.Get("/api/statistics", statisticsHandler(deps.Stats, deps.Sessions))
	if deps.WS != nil {
		r.Get("/ws", deps.WS.ServeWS)
	}
	return r
}

type bestGameResponse struct {
	Correct int       `json:"correct"`
	Total   int       `json:"total"`
	Date    time.Time `json:"date"`
}

type statisticsResponse struct {
	GamesCount      int              `json:"gamesCount"`
	TotalCorrect    int              `json:"totalCorrect"`
	TotalAmount     int              `json:"totalAmount"`
	BestGame        bestGameResponse `json:"bestGame"`
	AverageAccuracy float64          `json:"averageAccuracy"`
	ActiveSessions  int              `json:"activeSessions"`
}

func statisticsHandler(stats *app.StatisticsTracker, sessions app.SessionRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record domain.StatisticsRecord
		if stats != nil {
			record = stats.Snapshot()
		}
		resp := statisticsResponse{
			GamesCount:   record.GamesCount,
			TotalCorrect: record.TotalCorrect,
			TotalAmount:  record.TotalAmount,
			BestGame: bestGameResponse{
				Correct: record.BestGame.Correct,
				Total:   record.BestGame.Total,
				Date:    record.BestGame.Date,
			},
			AverageAccuracy: record.Accuracy(),
		}
		if sessions != nil {
			resp.ActiveSessions = sessions.Count()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func requestLogger(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Int64("duration_ms", time.Since(start).Milliseconds()).
					Str("request_id", middleware.GetReqID(r.Context())).
					Msg("http request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
