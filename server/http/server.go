package serverhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"dedup-service/internal/config"
	"dedup-service/internal/store"
)

// Serve слушает cfg.Addr() до отмены ctx, затем даёт запросам 10s на завершение.
func Serve(ctx context.Context, cfg config.Config, logger zerolog.Logger, st *store.Store) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(cfg, logger, st),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Bool("reports", st != nil).Msg("server starting")

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("server shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	logger.Info().Msg("bye")
	return nil
}
