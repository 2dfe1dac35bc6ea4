package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gabapcia/blockview/internal/blockfeed"
	"github.com/gabapcia/blockview/internal/config"
	"github.com/gabapcia/blockview/internal/handlers/cli"
	"github.com/gabapcia/blockview/internal/infra/blockapi"
	"github.com/gabapcia/blockview/internal/pkg/logger"
	"github.com/gabapcia/blockview/internal/pkg/resilience/retry"
	"github.com/gabapcia/blockview/internal/pkg/telemetry"
	transport "github.com/gabapcia/blockview/internal/pkg/transport/http"

	"go.uber.org/zap/zapcore"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, cfg.ServiceName)
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	// stdout belongs to the rendered view.
	if err := logger.Init(logger.WithLevel(cfg.LogLevel), logger.WithSink(zapcore.Lock(os.Stderr))); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	httpClient := transport.NewClient(
		transport.WithTimeout(cfg.HTTPTimeout),
		transport.WithRetryMax(cfg.HTTPRetryMax),
	)
	source := blockapi.NewClient(httpClient.StandardClient(), cfg.FeedEndpoint)

	var opts []blockfeed.Option
	if cfg.FetchAttempts > 1 {
		opts = append(opts, blockfeed.WithRetry(retry.New(
			retry.WithAttempts(cfg.FetchAttempts),
			retry.WithOnRetry(func(n uint, err error) {
				logger.Warn(ctx, "block list fetch attempt failed", "fetch.attempt", n+1, "error", err)
			}),
		)))
	}
	feed := blockfeed.New(source, opts...)

	logger.Debug(ctx, "starting blockview", "feed.endpoint", cfg.FeedEndpoint)
	return cli.Run(ctx, feed, source)
}
