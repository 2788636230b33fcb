package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auth_backend/internal/config"
	"auth_backend/internal/handlers"
	"auth_backend/internal/logger"
	"auth_backend/internal/repository"
	"auth_backend/internal/server"
	"auth_backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        User store backend API
// @version      1.0
// @description  System endpoints of the user store backend.
// @BasePath     /
func main() {
	// config first: it decides the log level
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	users, closeStore, err := repository.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		log.Fatalw("failed to open user store", "driver", cfg.Storage.Driver, "err", err)
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			log.Errorw("failed to close user store", "err", cerr)
		}
	}()
	log.Infow("user store ready", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)

	// wire dependencies
	repos := repository.NewRepository(users)
	services := service.NewService(repos)
	apiHandler := handlers.NewHandler(services, log, cfg.CORSOrigin)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains in-flight requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
