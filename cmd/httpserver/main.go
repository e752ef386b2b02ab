package main

import (
	"context"
	"errors"
	"filmorate/httpserver"
	"filmorate/pkg/config"
	"filmorate/pkg/logger"
	"filmorate/pkg/sentry"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
)

const shutdownTimeout = 10 * time.Second

// @title Filmorate API
// @version 1.0
// @description Films, users, likes and friendships.
// @BasePath /
func main() {
	boot := logger.Bootstrap()
	if err := run(); err != nil {
		boot.Errorw("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("cannot init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("cannot init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, closeStorage, err := initServices(ctx, cfg)
	if err != nil {
		err = fmt.Errorf("cannot init %s storage: %w", cfg.Storage, err)
		sentry.WithExtras(map[string]interface{}{"storage": cfg.Storage}).Fatal(err)
		return err
	}
	defer closeStorage()

	server := httpserver.Default(cfg, httpserver.WithLogger(log))
	server.FilmService = services.films
	server.UserService = services.users
	server.GenreService = services.genres
	server.MpaService = services.ratings
	server.StoragePing = services.ping

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr, "storage", cfg.Storage)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			sentry.WithTags(map[string]string{"addr": server.Addr}).Fatal(err)
			return fmt.Errorf("server stopped: %w", err)
		}
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}
	return nil
}
