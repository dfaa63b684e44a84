package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cardapio/internal/config"
	"cardapio/internal/logger"
	"cardapio/internal/mockapi"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "mockapi"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "mockapi",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	srv := mockapi.New(logg)
	if err := srv.Seed(); err != nil {
		logg.Error(context.Background(), "failed to seed data", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.MockAPI.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "shutdown failed", err)
		}
	}()

	logg.Info(logg.WithField(context.Background(), "addr", cfg.MockAPI.Addr), "mockapi listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(context.Background(), "server stopped", err)
		os.Exit(1)
	}
}
