package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/matchlogs/internal/api/handler"
	"github.com/albapepper/matchlogs/internal/cache"
	"github.com/albapepper/matchlogs/internal/config"
	"github.com/albapepper/matchlogs/internal/db"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
// pool is optional; without it /health/db reports the database as disabled.
func NewRouter(store handler.Store, pool *db.Pool, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "Content-Disposition"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(store, appCache, pool, cfg, logger)

	// --- Routes ---

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/players", h.ListPlayers)
		r.Route("/players/{player}", func(r chi.Router) {
			r.Get("/matches", h.GetMatches)
			r.Get("/matches.csv", h.GetMatchesCSV)
			r.Get("/summary", h.GetSummary)
		})
	})

	return r
}
