package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/HolyKasra/NezamPezeshki-Crawler/config"
	"github.com/HolyKasra/NezamPezeshki-Crawler/helpers"
	"github.com/HolyKasra/NezamPezeshki-Crawler/internal/scraper"
	"github.com/HolyKasra/NezamPezeshki-Crawler/logger"
	"github.com/HolyKasra/NezamPezeshki-Crawler/services/exporter"
	"github.com/HolyKasra/NezamPezeshki-Crawler/services/publisher"
	"github.com/HolyKasra/NezamPezeshki-Crawler/services/runner"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("province", cfg.Province).
		Str("specialty", cfg.Specialty).
		Str("output", cfg.OutputPath).
		Msg("Starting crawler")

	// Cancel the crawl on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("Crawl failed")
		os.Exit(1)
	}

	log.Info().Msg("Crawl finished")
}

// run executes one crawl. The browser session is scoped to this call so it is
// torn down on every exit path, including signal-driven cancellation.
func run(ctx context.Context, cfg *config.Config) error {
	session, err := scraper.NewBrowserSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	services := initializeServices(ctx, cfg)
	defer services.Cleanup()

	r := runner.New(
		scraper.New(cfg, session),
		services.Exporter,
		services.Publisher,
		helpers.NewLogger("errors.log"),
		cfg,
	)

	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Default.Info().Msg("Received shutdown signal")
		// The runner aborts at the next stage boundary
		return <-done
	case err := <-done:
		return err
	}
}

// Services holds all the initialized services
type Services struct {
	Exporter  exporter.Exporter
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices initializes the export and publish services
func initializeServices(ctx context.Context, cfg *config.Config) *Services {
	services := &Services{}

	services.Exporter = exporter.NewXLSXExporter(cfg.OutputPath)

	if cfg.PublishEnabled {
		services.Publisher = publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	} else {
		services.Publisher = publisher.NewNoopPublisher()
	}

	return services
}
