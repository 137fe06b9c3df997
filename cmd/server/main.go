// Package main initializes and starts the Hack or Snooze development
// server, setting up configuration, logging, the database connection,
// repositories, services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/hackorsnooze/internal/config"
	"github.com/atinyakov/hackorsnooze/internal/db"
	"github.com/atinyakov/hackorsnooze/internal/logger"
	"github.com/atinyakov/hackorsnooze/internal/repository"
	"github.com/atinyakov/hackorsnooze/internal/server/handler/http"
	"github.com/atinyakov/hackorsnooze/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Address
	dsn := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(dsn)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Remove expired session tokens in the background.
	db.StartSessionCleaner(context.Background(), postgresDB,
		time.Hour,      // interval
		7*24*time.Hour, // token lifetime: 7 days
		zapLogger,
	)

	// Initialize repositories for accounts and stories.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	storyRepo := repository.NewPostgresStoryRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo, storyRepo)
	storyService := service.NewStoryService(storyRepo)

	// Create HTTP handlers for the API surface.
	authHandler := &http.AuthHandler{AuthService: authService}
	storyHandler := &http.StoryHandler{StoryService: storyService, Auth: authService}
	userHandler := &http.UserHandler{UserService: authService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, storyHandler, userHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
