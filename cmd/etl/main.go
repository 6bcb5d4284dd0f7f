package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/crop-profile-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/crop-profile-etl/internal/adapter/jsonfile"
	kafkaadapter "github.com/couchcryptid/crop-profile-etl/internal/adapter/kafka"
	"github.com/couchcryptid/crop-profile-etl/internal/config"
	"github.com/couchcryptid/crop-profile-etl/internal/observability"
	"github.com/couchcryptid/crop-profile-etl/internal/pipeline"
	"github.com/couchcryptid/crop-profile-etl/internal/report"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	fs := afero.NewOsFs()

	loaders := []pipeline.Loader{jsonfile.NewWriter(fs, cfg.OutputPath, logger)}
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loaders = append(loaders, writer)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(
		csvfile.NewReader(fs, cfg.SourcePath, logger),
		loaders,
		report.NewConsole(os.Stdout),
		logger,
		metrics,
		clockwork.NewRealClock(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, runErr := p.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}
