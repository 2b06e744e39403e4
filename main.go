// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"movie-comments/cmd"
	"movie-comments/internal/data/repository"
	"movie-comments/internal/wire"
	"movie-comments/pkg/movieapi"
	"movie-comments/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("movie_api", config.MovieAPI.URL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Upstream movie API
	movies := movieapi.NewClient(config.MovieAPI.URL, config.MovieAPI.Timeout)

	// Initialize all repositories
	repos := repository.NewRepository(movies, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)
	defer app.Views.Close()

	go app.Views.Run(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		app.Views.Close()
		logger.Fatal("HTTP server stopped", zap.Error(err))
	}
}
