package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/road-hazard-api/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/road-hazard-api/internal/adapter/kafka"
	"github.com/couchcryptid/road-hazard-api/internal/adapter/mapbox"
	"github.com/couchcryptid/road-hazard-api/internal/adapter/postgres"
	"github.com/couchcryptid/road-hazard-api/internal/config"
	"github.com/couchcryptid/road-hazard-api/internal/domain"
	"github.com/couchcryptid/road-hazard-api/internal/observability"
	"github.com/couchcryptid/road-hazard-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DBAutoMigrate {
		dsn, err := postgres.ResolveDSN(cfg.DatabaseURL, cfg.DatabaseKey)
		if err != nil {
			return err
		}
		if err := postgres.Migrate(dsn, logger); err != nil {
			return err
		}
	}

	pool, err := postgres.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()
	store := postgres.NewStore(pool, logger, metrics)

	scorer, err := domain.NewMockScorer(cfg.MockConfidenceMin, cfg.MockConfidenceMax)
	if err != nil {
		return err
	}

	opts := []service.Option{}

	// Geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithGeocoder(geocoder))
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var publisher interface {
		service.HazardPublisher
		Close() error
	} = kafkaadapter.NoopPublisher{}
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, metrics, logger)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaHazardTopic)
	}
	opts = append(opts, service.WithPublisher(publisher))

	svc := service.New(store, scorer, logger, metrics, opts...)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, store, httpadapter.Options{
		Environment: cfg.Environment,
		CORSOrigins: cfg.CORSOrigins,
	}, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka publisher close error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
