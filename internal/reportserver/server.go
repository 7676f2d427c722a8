package reportserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"quizmaker/internal/history"
	"quizmaker/internal/logger"
)

// Config captures the settings for serving exported quizzes and history.
type Config struct {
	Addr      string
	ExportDir string
	HistoryDB string
}

// Serve starts an HTTP server that hosts exported quiz pages and the results
// history until ctx is cancelled.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("reportserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}

	var source HistorySource
	if cfg.HistoryDB != "" {
		db, err := history.Open(ctx, cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer db.Close()
		source = db
	}
	handler, err := NewHandler(cfg, source)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	logger.Get().Info("server listening", zap.String("addr", cfg.Addr), zap.String("export_dir", cfg.ExportDir))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
