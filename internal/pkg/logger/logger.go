// Package logger provides a global, sugared zap logger with optional
// OpenTelemetry integration. It emits JSON logs to stdout, enriches entries
// with the active trace and span ids taken from the context, and tees records
// into the OTEL log pipeline when a telemetry LoggerProvider is registered.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/gabapcia/blockview/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// instrumentationName identifies this module in the OTEL log pipeline.
const instrumentationName = "github.com/gabapcia/blockview"

var (
	// logger is the global SugaredLogger. It discards everything until Init runs.
	logger = zap.NewNop().Sugar()

	// initOnce ensures the logger is only configured a single time.
	initOnce sync.Once
)

type config struct {
	level string              // minimum level (debug, info, warn, error, panic, fatal)
	sink  zapcore.WriteSyncer // destination of the JSON core
}

// Option configures the logger before initialization.
type Option func(*config)

// WithLevel sets the minimum log level for the global logger.
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithSink redirects the JSON output. Default: stdout.
func WithSink(w zapcore.WriteSyncer) Option {
	return func(c *config) {
		c.sink = w
	}
}

// Init configures the global logger. By default it logs JSON to stdout at
// "info". If telemetry.LoggerProvider returns a provider, an otelzap core is
// added so records also reach the telemetry backend. Only the first
// successful call takes effect.
//
// Returns an error if the level cannot be parsed.
func Init(opts ...Option) error {
	cfg := config{level: "info", sink: zapcore.AddSync(os.Stdout)}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initOnce.Do(func() {
		cores := []zapcore.Core{
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				cfg.sink,
				level,
			),
		}

		if lp := telemetry.LoggerProvider(); lp != nil {
			cores = append(cores, otelzap.NewCore(instrumentationName, otelzap.WithLoggerProvider(lp)))
		}

		logger = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// Sync flushes any buffered log entries.
func Sync() error {
	return logger.Sync()
}

// withTrace appends the trace and span ids of the span in ctx, if any.
func withTrace(ctx context.Context, keysAndValues []any) []any {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return keysAndValues
	}

	return append(keysAndValues,
		"trace_id", sc.TraceID().String(),
		"span_id", sc.SpanID().String(),
	)
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Debugw(msg, withTrace(ctx, keysAndValues)...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Infow(msg, withTrace(ctx, keysAndValues)...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Warnw(msg, withTrace(ctx, keysAndValues)...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Errorw(msg, withTrace(ctx, keysAndValues)...)
}

// Fatal logs a fatal-level message and then exits.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Fatalw(msg, withTrace(ctx, keysAndValues)...)
}
