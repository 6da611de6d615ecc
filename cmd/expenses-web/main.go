package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"expenses/internal/cli"
	apphttp "expenses/internal/http"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)
	b := cli.InitBackend(logger, cfg)
	defer b.Close()

	srv := apphttp.NewServer(":"+cfg.Port, b.Service)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting expenses web server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
