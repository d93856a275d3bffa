package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"kwtaxonomy/internal/cache"
	"kwtaxonomy/internal/config"
	"kwtaxonomy/internal/db"
	"kwtaxonomy/internal/grouping"
	"kwtaxonomy/internal/jobs"
	"kwtaxonomy/internal/keywords"
	"kwtaxonomy/internal/logging"
	"kwtaxonomy/internal/metrics"
	"kwtaxonomy/internal/server"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat, "kwtaxonomy")

	lexicons, err := config.LoadLexicons(cfg.LexiconFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.LexiconFile).Msg("failed to load lexicons")
	}
	log.Info().
		Int("brands", len(lexicons.Brands)).
		Int("price_terms", len(lexicons.Price)).
		Msg("lexicons loaded")

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations completed successfully")

	if cfg.IsDev() {
		if project, err := database.SeedDevProject(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to seed demo project")
		} else if project != nil {
			log.Info().Str("project", project.ID.String()).Msg("seeded demo project")
		}
	}

	// Result cache
	var results *cache.Results
	if cfg.CacheEnabled() {
		store, err := cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("result cache disabled")
		} else {
			defer store.Close()
			results = cache.New(store, cfg.CacheTTL)
			log.Info().Dur("ttl", cfg.CacheTTL).Msg("result cache enabled")
		}
	}

	recorder := metrics.Init(database)

	source := db.NewGuardedSource(database, db.BreakerSettings{
		MaxFailures: cfg.BreakerMaxFailures,
		Timeout:     cfg.BreakerTimeout,
	})
	svc := grouping.NewService(keywords.NewPipeline(lexicons), source, results, recorder)

	// Background cache warmer
	if results.Enabled() && cfg.WarmInterval > 0 {
		warmer := jobs.NewCacheWarmer(database, svc, cfg.WarmInterval)
		go warmer.Start(ctx)
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(database, svc)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server")
	if err := srv.Shutdown(); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}
	log.Info().Msg("server exited")
}
