// Package main runs the vehicle manager HTTP service.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/garagesvc/vehicle-manager/internal/app"
	"github.com/garagesvc/vehicle-manager/internal/config"
	"github.com/garagesvc/vehicle-manager/internal/httpapi"
	"github.com/garagesvc/vehicle-manager/internal/storage/postgres"
	"github.com/garagesvc/vehicle-manager/pkg/logger"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides SERVER_ADDR)")
	flag.Parse()

	_ = godotenv.Load() // allow .env for local runs

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	logg := logger.New(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat)

	stores := app.Stores{}
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			logg.WithError(err).Error("connect to database")
			os.Exit(1)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			cancel()
			logg.WithError(err).Error("prepare database schema")
			os.Exit(1)
		}
		cancel()
		defer store.Close()
		stores.Vehicles = store
		logg.Info("using postgres vehicle store")
	} else {
		logg.Info("using in-memory vehicle store")
	}

	application := app.New(stores, logg)
	handler := httpapi.NewHandler(application, logg, cfg.ServiceName)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logg.WithField("addr", cfg.ListenAddr).
			WithField("environment", cfg.Environment).
			Info("vehicle manager listening")
		logg.Infof("health check available at http://%s/health", cfg.ListenAddr)
		logg.Infof("vehicles API available at http://%s/api/v1/vehicles", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logg.WithError(err).Error("server error")
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logg.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.WithError(err).Warn("server shutdown")
	}

	logg.Info("server stopped")
}
