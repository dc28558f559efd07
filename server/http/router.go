package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"supply-service/internal/config"
	"supply-service/internal/middleware"
	supHnd "supply-service/internal/supply/handler"
	"supply-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health)

	h := supHnd.New(cfg, logger)
	r.Route("/supply", func(r chi.Router) {
		r.Post("/ingest", h.Ingest)
		r.Get("/metrics", h.Metrics)
		r.Get("/records", h.Records)
		r.Post("/edit", h.Edit)
		r.Get("/export", h.Export)
		r.Post("/reset", h.Reset)
	})

	return r
}
