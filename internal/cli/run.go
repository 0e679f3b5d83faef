package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sm310/greynoise-etl/internal/config"
	"github.com/sm310/greynoise-etl/internal/etl"
	"github.com/sm310/greynoise-etl/internal/metrics"
	"github.com/sm310/greynoise-etl/pkg/database"
	"github.com/sm310/greynoise-etl/pkg/logger"
)

// runConnector wires the stages together and executes one full run.
// Teardown is deferred so an interrupt mid-run still closes the store
// connection and flushes metrics.
func runConnector() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		if err := logger.InitLogger(cfg.LogFile); err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
	}
	defer logger.Close()

	runID := uuid.NewString()
	logger.Infof("GreyNoise connector run %s starting.", runID)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		return err
	}
	defer database.Disconnect(mongoClient)

	recorder := metrics.New(prometheus.NewRegistry())
	defer pushMetrics(recorder, cfg.PushgatewayURL)

	pipeline := etl.NewETL(
		etl.NewAPIExtractor(cfg.BaseURL, cfg.APIKey),
		etl.NewTransformer(),
		etl.NewMongoLoader(mongoClient, cfg.MongoDatabase),
		recorder,
	)

	if err := pipeline.RunAll(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warnf("Run %s interrupted, shutting down.", runID)
			return nil
		}
		return err
	}

	logger.Infof("GreyNoise connector run %s finished.", runID)
	return nil
}

func pushMetrics(recorder *metrics.Recorder, url string) {
	if url == "" {
		return
	}
	if err := recorder.Push(url); err != nil {
		logger.Warnf("Failed to push metrics to %s: %v", url, err)
		return
	}
	logger.Infof("Metrics pushed to %s.", url)
}
