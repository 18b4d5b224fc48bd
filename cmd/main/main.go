package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"dedup-service/internal/config"
	"dedup-service/internal/store"
	serverhttp "dedup-service/server/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := config.SetupLogger(cfg)

	var st *store.Store
	if cfg.ReportDB != "" {
		st, err = store.Open(cfg.ReportDB)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.ReportDB).Msg("report store")
		}
		defer st.Close()
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serverhttp.Serve(ctx, cfg, logger, st); err != nil {
		logger.Error().Err(err).Msg("listen")
		os.Exit(1)
	}
}
