// Package main provides the entry point for the journal matcher service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pubscout/journal-matcher/internal/analyzers"
	"github.com/pubscout/journal-matcher/internal/config"
	"github.com/pubscout/journal-matcher/internal/domain"
	"github.com/pubscout/journal-matcher/internal/keywords"
	"github.com/pubscout/journal-matcher/internal/match"
	"github.com/pubscout/journal-matcher/internal/observability"
	"github.com/pubscout/journal-matcher/internal/openalex"
	httpserver "github.com/pubscout/journal-matcher/internal/server/http"
	"github.com/pubscout/journal-matcher/internal/translate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("journal-matcher server starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics("journal_matcher")

	// Upstream clients.
	openalexClient := openalex.New(openalex.Config{
		BaseURL:    cfg.OpenAlex.BaseURL,
		Email:      cfg.OpenAlex.Email,
		Timeout:    cfg.OpenAlex.Timeout,
		RateLimit:  cfg.OpenAlex.RateLimit,
		BurstSize:  cfg.OpenAlex.BurstSize,
		MaxResults: cfg.OpenAlex.MaxResults,
	}).WithMetrics(metrics)

	translator := translate.New(translate.Config{
		Enabled:        cfg.Translator.Enabled,
		BaseURL:        cfg.Translator.BaseURL,
		TargetLanguage: cfg.Translator.TargetLanguage,
		Timeout:        cfg.Translator.Timeout,
	}, logger)

	extractor := keywords.New(keywords.Config{
		MaxKeywords:    cfg.Extractor.MaxKeywords,
		MinTokenLength: cfg.Extractor.MinTokenLength,
		MinSurvivors:   cfg.Extractor.MinSurvivors,
		FallbackWords:  cfg.Extractor.FallbackWords,
	})

	// Matching pipeline and analyzers.
	pipeline := match.New(match.Config{
		Thresholds: domain.TierThresholds{
			Q1: cfg.Matching.TierQ1,
			Q2: cfg.Matching.TierQ2,
			Q3: cfg.Matching.TierQ3,
		},
		TopicLimit:       cfg.OpenAlex.MaxResults,
		MaxDOIs:          cfg.Matching.MaxDOIs,
		ShortQueryTokens: cfg.Matching.ShortQueryTokens,
	}, openalexClient, translator, extractor, logger, metrics)

	analyzerSvc := analyzers.New(analyzers.Config{
		TrendYears: cfg.Analyzers.TrendYears,
		TopN:       cfg.Analyzers.TopN,
		SampleSize: cfg.Analyzers.SampleSize,
		VenueThresholds: domain.TierThresholds{
			Q1: cfg.Analyzers.VenueTierQ1,
			Q2: cfg.Analyzers.VenueTierQ2,
			Q3: cfg.Analyzers.VenueTierQ3,
		},
	}, openalexClient, logger, metrics)

	// HTTP REST API server.
	httpCfg := httpserver.Config{
		Address:         cfg.Server.HTTPAddress(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     2 * time.Minute,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	httpSrv := httpserver.NewServer(httpCfg, pipeline, analyzerSvc, logger)

	// Set up Prometheus metrics handler on a separate port if configured.
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress(),
			Handler:      metricsMux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
	}

	// Channel to collect server errors.
	errCh := make(chan error, 2)

	// Start HTTP REST API server in background.
	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Start metrics server if configured.
	if metricsServer != nil {
		go func() {
			logger.Info().
				Str("address", metricsServer.Addr).
				Msg("metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	readyLog := logger.Info().Str("http_address", httpCfg.Address)
	if metricsServer != nil {
		readyLog = readyLog.Str("metrics_address", metricsServer.Addr)
	}
	readyLog.Msg("journal-matcher is ready")

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	// Graceful shutdown.
	logger.Info().Msg("shutting down journal-matcher")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown error")
		}
	}

	logger.Info().Msg("journal-matcher shutdown complete")
	return nil
}
