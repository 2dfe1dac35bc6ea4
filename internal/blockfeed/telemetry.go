package blockfeed

import (
	"context"

	"github.com/gabapcia/blockview/internal/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gabapcia/blockview/internal/blockfeed"

const (
	fetchSpanName       = "blockfeed.fetch"
	fetchesCounterName  = "blockfeed.fetches"
	blocksHistogramName = "blockfeed.blocks"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// instruments holds the tracer and metric instruments of one service. They
// are created once, in New.
type instruments struct {
	tracer  trace.Tracer
	fetches metric.Int64Counter
	blocks  metric.Int64Histogram
}

// newInstruments falls back to no-op instruments when creation fails, so a
// broken meter never stops the fetch loop.
func newInstruments(tp trace.TracerProvider, mp metric.MeterProvider) instruments {
	ctx := context.Background()
	meter := mp.Meter(instrumentationName)

	fetches, err := meter.Int64Counter(fetchesCounterName,
		metric.WithDescription("Number of block list fetch cycles."),
	)
	if err != nil {
		logger.Error(ctx, "failed to create fetch counter", "metric.name", fetchesCounterName, "error", err)
		fetches = noop.Int64Counter{}
	}

	blocks, err := meter.Int64Histogram(blocksHistogramName,
		metric.WithDescription("Number of blocks per successful delivery."),
	)
	if err != nil {
		logger.Error(ctx, "failed to create block count histogram", "metric.name", blocksHistogramName, "error", err)
		blocks = noop.Int64Histogram{}
	}

	return instruments{
		tracer:  tp.Tracer(instrumentationName),
		fetches: fetches,
		blocks:  blocks,
	}
}

func (in instruments) recordFetch(ctx context.Context, outcome string, blocks int) {
	in.fetches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	if outcome == outcomeSuccess {
		in.blocks.Record(ctx, int64(blocks))
	}
}
