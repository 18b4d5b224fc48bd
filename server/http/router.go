package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"dedup-service/internal/config"
	dedupHnd "dedup-service/internal/dedup/handler"
	"dedup-service/internal/middleware"
	"dedup-service/internal/store"
	"dedup-service/server/http/handlers"
)

// NewRouter собирает HTTP API. st == nil: эндпоинты /reports не регистрируются.
func NewRouter(cfg config.Config, logger zerolog.Logger, st *store.Store) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health)

	// основной эндпоинт
	r.Post("/dedup", dedupHnd.Dedup(cfg, logger, st))

	if st != nil {
		r.Get("/reports", dedupHnd.Reports(st))
		r.Get("/reports/{id}", dedupHnd.Report(st))
	}

	return r
}
