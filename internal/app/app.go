package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/todoapp/todo-backend/internal/config"
	"github.com/todoapp/todo-backend/internal/handler"
	"github.com/todoapp/todo-backend/internal/logging"
	"github.com/todoapp/todo-backend/internal/metrics"
	"github.com/todoapp/todo-backend/internal/service"
	"github.com/todoapp/todo-backend/internal/storage"
)

// Run wires the service together and serves HTTP until SIGINT or
// SIGTERM.
func Run() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize logger and metrics
	logger := logging.New(cfg.LogLevel).With().Str("service", "todo-backend").Logger()
	metrics.Init(cfg.MetricsAddr)
	logger.Info().Msgf("metrics server listening on %s", cfg.MetricsAddr)

	// Connect to MongoDB
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := storage.Connect(connectCtx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()
	logger.Info().Str("database", cfg.MongoDB).Msg("mongodb connection established")

	// Wire repository, service, and routes
	repo := storage.NewMongoTodoRepository(client.Database(cfg.MongoDB))
	todos := service.NewTodoService(repo)

	router := handler.NewRouter(&handler.RouterDeps{
		Todos:  todos,
		Logger: &logger,
		Health: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Msgf("todo-backend listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-stop
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return
	}
	logger.Info().Msg("server stopped gracefully")
}
