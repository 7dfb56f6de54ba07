package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/ai"
	"github.com/simple-lms-api/internal/api"
	"github.com/simple-lms-api/internal/config"
	"github.com/simple-lms-api/internal/database"
	"github.com/simple-lms-api/internal/fixtures"
	"github.com/simple-lms-api/internal/metrics"
	"github.com/simple-lms-api/internal/service"
	"github.com/simple-lms-api/internal/session"
	"github.com/simple-lms-api/internal/store"
	"github.com/simple-lms-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	log.Info().Msg("Starting SimpleLMS API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = logger.New(cfg.Log.Level, cfg.Log.Format)

	// Session persistence
	persister, closeSession := newPersister(cfg, log)
	defer closeSession()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// Initialize store and services
	st := store.New(fixtures.Seed(time.Now()), log)
	generator := ai.NewGeminiClient(cfg.AI, collector, log)
	services := service.NewServices(st, persister, generator, cfg, collector, log)

	// Restore the session persisted by a previous run
	services.Identity.Bootstrap(context.Background())

	// Initialize router
	router := api.NewRouter(services, cfg, registry, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// newPersister builds the session backend selected by configuration.
// The returned func releases its connections.
func newPersister(cfg *config.Config, log zerolog.Logger) (session.Persister, func()) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client, err := session.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Using redis session backend")
		return session.NewRedisPersister(client, cfg.Session.Key, cfg.Session.TTL), func() { client.Close() }

	case config.SessionBackendPostgres:
		db, err := database.Open(context.Background(), &cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		if err := db.Migrate(cfg.Session.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
		log.Info().Msg("Using postgres session backend")
		return session.NewPostgresPersister(db, cfg.Session.Key), func() { db.Close() }

	default:
		log.Info().Msg("Using in-memory session backend")
		return session.NewMemoryPersister(), func() {}
	}
}
