// Package blockfeed polls a block source on a fixed interval and delivers
// each successfully fetched block list to a single consumer.
//
// A fetch happens once immediately when the service starts and then once per
// RefreshInterval. Failed fetches are reported to a failure handler and
// produce no delivery, so the consumer keeps whatever it last received.
package blockfeed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gabapcia/blockview/internal/pkg/logger"
	"github.com/gabapcia/blockview/internal/pkg/resilience/retry"
	"github.com/gabapcia/blockview/internal/pkg/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ErrServiceAlreadyStarted is returned by Start when the polling loop is
// already running.
var ErrServiceAlreadyStarted = errors.New("service already started")

// RefreshInterval is the fixed delay between two fetches.
const RefreshInterval = 10 * time.Second

const deliveryChannelBufferSize = 1

// Service controls the lifecycle of the polling loop.
type Service interface {
	// Start fetches immediately and then on every tick, sending each
	// successful block list on the returned channel. The channel is closed
	// once the loop exits.
	Start(ctx context.Context) (<-chan []Block, error)

	// Close cancels the timer and blocks until the loop has exited.
	// It is safe to call Close on a service that was never started.
	Close()
}

// FetchFailure describes a fetch cycle that produced no delivery.
type FetchFailure struct {
	ID  string // correlation id of the fetch cycle
	Err error  // cause of the failure
}

type fetchFailureHandler func(ctx context.Context, failure FetchFailure)

type service struct {
	mu        sync.Mutex
	isStarted bool
	cancel    context.CancelFunc
	done      chan struct{}

	source   Source
	interval time.Duration

	retry               retry.Retry
	fetchFailureHandler fetchFailureHandler
	instruments         instruments

	// seen holds the hashes of the last delivery. Only the loop goroutine
	// touches it.
	seen types.Set[string]
}

var _ Service = (*service)(nil)

func (s *service) Start(ctx context.Context) (<-chan []Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return nil, ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	deliveryCh := make(chan []Block, deliveryChannelBufferSize)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.seen = types.NewSet[string]()

	go s.poll(ctx, deliveryCh, s.done)

	s.isStarted = true
	return deliveryCh, nil
}

func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	s.isStarted = false
	s.cancel = nil
	s.done = nil
}

type config struct {
	interval            time.Duration
	retry               retry.Retry
	fetchFailureHandler fetchFailureHandler
	tracerProvider      trace.TracerProvider
	meterProvider       metric.MeterProvider
}

// Option configures the service.
type Option func(*config)

// New returns a service that polls source every RefreshInterval.
// By default failed fetches are not retried and are logged at error level,
// and spans and metrics go to the global otel providers.
func New(source Source, opts ...Option) *service {
	cfg := config{
		interval:            RefreshInterval,
		retry:               nil,
		fetchFailureHandler: defaultOnFetchFailure,
		tracerProvider:      otel.GetTracerProvider(),
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		source:              source,
		interval:            cfg.interval,
		retry:               cfg.retry,
		fetchFailureHandler: cfg.fetchFailureHandler,
		instruments:         newInstruments(cfg.tracerProvider, cfg.meterProvider),
	}
}

func defaultOnFetchFailure(ctx context.Context, failure FetchFailure) {
	logger.Error(ctx, "block list fetch failed, keeping previous list",
		"fetch.id", failure.ID,
		"fetch.error", failure.Err,
	)
}

// WithFetchFailureHandler replaces the default logging failure handler.
func WithFetchFailureHandler(f fetchFailureHandler) Option {
	return func(c *config) {
		c.fetchFailureHandler = f
	}
}

// WithRetry retries each fetch with r before giving up on the cycle.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithInterval overrides RefreshInterval. Intended for tests.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		c.interval = d
	}
}

// WithTracerProvider sets where fetch spans are recorded.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets where fetch metrics are recorded.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}
