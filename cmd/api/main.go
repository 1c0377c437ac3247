package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"scambait-lab/internal/api"
	"scambait-lab/internal/api/handlers"
	"scambait-lab/internal/config"
	"scambait-lab/internal/domain/models"
	"scambait-lab/internal/domain/services"
	"scambait-lab/internal/domain/services/detection"
	"scambait-lab/internal/domain/services/extraction"
	"scambait-lab/internal/domain/services/profiling"
	"scambait-lab/internal/infrastructure/cache"
	"scambait-lab/internal/infrastructure/database"
	"scambait-lab/internal/infrastructure/database/repository"
	"scambait-lab/internal/infrastructure/sessions"
	"scambait-lab/internal/streaming"
	"scambait-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting ScamBait Lab")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure
	db, redisCache, err := initInfrastructure(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize infrastructure")
	}
	defer func() {
		if db != nil {
			db.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Long-term intel storage is optional; the session store alone is
	// enough to run the honeypot
	var intelRepo *repository.IntelRepository
	if db != nil {
		intelRepo = repository.NewIntelRepository(db, log)
		if err := intelRepo.Migrate(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to migrate intel storage, continuing without it")
			intelRepo = nil
		} else {
			log.Info().Msg("intel repository initialized with database")
		}
	} else {
		log.Warn().Msg("running without database - intel artifacts stay session-scoped")
	}

	// Initialize streaming infrastructure
	var natsPublisher *streaming.NATSPublisher
	if cfg.NATS.Enabled {
		var err error
		natsPublisher, err = streaming.NewNATSPublisher(ctx, cfg.NATS, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to NATS, continuing without real-time streaming")
		} else {
			log.Info().Str("url", cfg.NATS.URL).Msg("connected to NATS")
		}
	}

	eventBus := streaming.NewEventBus(natsPublisher, log)
	log.Info().Bool("nats_enabled", natsPublisher != nil).Msg("event bus initialized")

	// Build the decision pipeline
	analyzers := []detection.Analyzer{
		detection.NewLinguisticAnalyzer(),
		detection.NewBehavioralAnalyzer(),
		detection.NewTechnicalAnalyzer(),
		detection.NewContextAnalyzer(),
	}
	runner := detection.NewRunner(analyzers, cfg.Detection.AnalyzerTimeout, log)
	combiner := detection.NewCombiner(combinerConfig(cfg.Detection), log)
	profiler := profiling.NewProfiler(log)
	tracker := extraction.NewTracker(extraction.Config{
		Enabled:                cfg.Extraction.Enabled,
		EarlyStageLimit:        cfg.Extraction.EarlyStageLimit,
		MidStageLimit:          cfg.Extraction.MidStageLimit,
		TacticCooldownMessages: cfg.Extraction.TacticCooldownMessages,
	}, log)

	store := sessions.NewStore(redisCache, cfg.Sessions.TTL, log)
	engine := services.NewEngine(runner, combiner, profiler, tracker, store, intelRepo, eventBus, log)
	log.Info().Int("analyzers", len(analyzers)).Msg("honeypot engine initialized")

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		Engine: engine,
		Cache:  redisCache,
		Intel:  intelRepo,
		Bus:    eventBus,
		Logger: log,
	})

	// Create router
	router := api.NewRouter(cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	// No write timeout: /api/v1/stream holds its response open
	httpServer := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:     httpHandler,
		ReadTimeout: cfg.Server.ReadTimeout,
		IdleTimeout: cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	eventBus.Close()

	log.Info().Msg("shutdown complete")
}

// initInfrastructure initializes database and cache connections
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache, error) {
	// Connect to PostgreSQL when enabled; failure is not fatal
	var db *database.PostgresDB
	if cfg.Database.Enabled {
		var err error
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
			db = nil
		}
	}

	// Redis backs the session store and rate limiter, so it is required
	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		return db, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return db, redisCache, nil
}

func combinerConfig(cfg config.DetectionConfig) detection.CombinerConfig {
	return detection.CombinerConfig{
		Weights: models.FactorScores{
			models.FactorLinguistic: cfg.FactorWeights.Linguistic,
			models.FactorBehavioral: cfg.FactorWeights.Behavioral,
			models.FactorTechnical:  cfg.FactorWeights.Technical,
			models.FactorContext:    cfg.FactorWeights.Context,
			models.FactorLLM:        cfg.FactorWeights.LLM,
		},
		ConfidenceThreshold:        cfg.ConfidenceThreshold,
		LLMHighConfidenceThreshold: cfg.LLMHighConfidenceThreshold,
		RedFlagThreshold:           cfg.RedFlagThreshold,
	}
}
