package meanshift

import "log/slog"

// Option configures a Filter during creation.
//
// Example:
//
//	// Sequential pass
//	f, err := meanshift.NewFilter(cfg, meanshift.WithWorkers(1))
//
//	// Eight workers, logging to a dedicated logger
//	f, err := meanshift.NewFilter(cfg,
//	    meanshift.WithWorkers(8),
//	    meanshift.WithLogger(logger))
type Option func(*options)

type options struct {
	workers int
	logger  *slog.Logger
}

func defaultOptions() options {
	return options{
		workers: 0, // GOMAXPROCS
		logger:  nil,
	}
}

// WithWorkers sets the number of goroutines used by a pass.
// 1 runs sequentially on the caller's goroutine; 0 or a negative value uses
// GOMAXPROCS. The output does not depend on this setting.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger overrides the package logger for one filter.
// A nil logger falls back to Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
