package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"topichat/internal/config"
	"topichat/internal/domain"
	"topichat/internal/service"
	"topichat/internal/ws"
)

// NewRouter constructs the main HTTP router and wires routes and middleware.
func NewRouter(
	cfg *config.Config,
	topics *service.TopicService,
	reports *service.ReportService,
	summaries *service.SummaryService,
	stats domain.StatsAggregator,
	hub *ws.Hub,
	log zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": cfg.AppName + " API",
			"version": "1.0.0",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/topics", func(r chi.Router) {
			r.Get("/", handleListTopics(topics))
			r.Post("/", handleCreateTopic(topics))
			r.Get("/{topicID}", handleGetTopic(topics))
			r.Get("/{topicID}/messages", handleListMessages(topics))
		})

		r.Post("/report", handleSubmitReport(reports))

		r.Get("/stats", handleGetStats(stats, topics, reports))
		r.Post("/send-summary", handleSendSummary(summaries))
	})

	// WebSocket endpoint
	r.Get("/ws", ws.MakeHandler(hub, cfg.CORSOrigins, log))

	return r
}

// requestLogger logs each request with zerolog once the response is written.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	log = log.With().Str("component", "http").Logger()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// writeJSON is a small helper to send JSON responses.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError maps domain errors to status codes with the standard envelope.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrDelivery):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Success: false, Error: domain.ErrDelivery.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Success: false, Error: "internal server error"})
	}
}
