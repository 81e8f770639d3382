package sasport

import (
	"time"

	"github.com/bft-labs/sasport/internal/adapters/log"
	"github.com/bft-labs/sasport/internal/ports"
)

// Option configures optional behavior of a conversion run.
type Option func(*options)

// options holds the optional configuration for a conversion run.
type options struct {
	codec          ports.Codec
	logger         ports.Logger
	progress       ports.ProgressSink
	converterCmd   string
	convertTimeout time.Duration
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger:         log.NewNoopLogger(),
		convertTimeout: 2 * time.Minute,
	}
}

// WithCodec sets a custom conversion backend, e.g. an in-process library
// wrapper. If not provided, the external converter command is used.
func WithCodec(c Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithProgress sets a sink for per-item progress notifications.
// Notifications are called synchronously from the batch loop.
func WithProgress(sink ProgressSink) Option {
	return func(o *options) {
		o.progress = sink
	}
}

// WithConverterCommand sets the external converter command line used when no
// custom codec is provided. The command is split shell-style.
func WithConverterCommand(cmd string) Option {
	return func(o *options) {
		o.converterCmd = cmd
	}
}

// WithConvertTimeout bounds a single item's conversion.
// Zero disables the limit.
func WithConvertTimeout(d time.Duration) Option {
	return func(o *options) {
		o.convertTimeout = d
	}
}
