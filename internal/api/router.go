package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Candyboard/internal/events"
)

func NewRouter(d DatasetProvider, p events.Publisher, recommendations []string, rateLimitPerMinute int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(RequestLogger(logger))
	if rateLimitPerMinute > 0 {
		r.Use(RateLimitMiddleware(rateLimitPerMinute))
	}

	validate := validator.New()
	candies := NewCandiesHandler(d, validate)
	recs := NewRecommendationsHandler(d, recommendations)
	selections := NewSelectionsHandler(d, p, validate, logger)
	stats := NewStatsHandler(d)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/candies", candies.List)
		r.Post("/candies/filter", candies.Filter)
		r.Get("/candies/{name}", candies.Get)

		r.Get("/recommendations", recs.List)
		r.Post("/selections/analyze", selections.Analyze)

		r.Get("/stats", stats.Stats)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
