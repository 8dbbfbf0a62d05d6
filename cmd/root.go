package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/meridian/internal/config"
	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/repository"
	"github.com/UnknownOlympus/meridian/internal/service"
	"github.com/UnknownOlympus/meridian/internal/supply"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var errIncompleteRun = errors.New("reverse geocoding run did not complete")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meridian [data-point files...]",
		Short: "Reverse geocode data-point files into a table of street addresses",
		Long: `Reads latitude/longitude pairs from data-point files, resolves each pair to a
street address with the configured provider and stores the addresses.
Files given as arguments replace MERIDIAN_INPUT_FILES.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.New()
			config.BindFlags(v, cmd.Flags())
			cfg := config.MustLoadFrom(v)
			if len(args) > 0 {
				cfg.InputFiles = args
			}

			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("env", "", "environment: local, development, production")
	flags.Int("workers", 0, "number of concurrent requester tasks")
	flags.String("provider-type", "", "reverse geocoding provider: google, nominatim, visicom")
	flags.String("language", "", "preferred language of the returned addresses")
	flags.String("sink", "", "storage backend: sqlite, postgres")
	flags.String("sqlite-path", "", "database file of the sqlite sink")
	flags.Int("health-port", 0, "port of the monitoring server")

	return cmd
}

// run resolves the configured input once and reports an error unless every
// coordinate was resolved and persisted.
func run(ctx context.Context, cfg *config.Config) error {
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	coords, err := supply.TextFiles{Paths: cfg.InputFiles}.FetchAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read input", "error", err)
		return fmt.Errorf("failed to read input: %w", err)
	}
	logger.InfoContext(ctx, "Input loaded", "files", len(cfg.InputFiles), "coordinates", len(coords))

	store, err := repository.NewStore(ctx, repository.Config{
		Type:       repository.Type(cfg.Sink),
		SQLitePath: cfg.SQLitePath,
		Postgres: repository.PostgresConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
		},
	}, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open sink", "sink", cfg.Sink, "error", err)
		return fmt.Errorf("failed to open sink: %w", err)
	}
	defer store.Close()

	// The limit covers every requester together: one provider instance is shared.
	resolver, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: cfg.RateLimit,
		Language:  cfg.Language,
		Logger:    logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create geocoding provider", "error", err)
		return fmt.Errorf("failed to create geocoding provider: %w", err)
	}
	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	server := newMonitoringServer(ctx, logger, reg, store, cfg.Port)
	go serve(ctx, logger, server)
	defer func() {
		const shutdownTimeout = 5 * time.Second
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if errShutdown := server.Shutdown(sctx); errShutdown != nil {
			logger.ErrorContext(sctx, "Failed to stop monitoring server", "error", errShutdown)
		}
	}()

	geoService := service.NewReverseGeocodingService(
		logger,
		store,
		resolver,
		cfg.ProviderType, // Provider name for metrics
		appMetrics,
		cfg.Workers,
		cfg.IdleWait,
	)

	result, err := geoService.Run(ctx, coords)
	if err != nil {
		return err
	}

	if result.Outcome() != service.OutcomeComplete {
		return fmt.Errorf("%w: %d of %d addresses persisted: %w",
			errIncompleteRun, result.Persisted, result.Total, result.Err())
	}

	logger.InfoContext(ctx, "All coordinates resolved and persisted", "total", result.Total)

	return nil
}
