package at

import "time"

// AccessLogEvent describes one access attempt for logging. Expr and Engine
// are set only for expression-resolved requests.
type AccessLogEvent struct {
	Collection string
	Indices    []string
	Expr       string
	Engine     string
	Strategy   Strategy
	Duration   time.Duration
	Err        error
}

// AccessLogger records access events.
type AccessLogger interface {
	LogAccess(AccessLogEvent)
}

// AccessLoggerFunc adapts a function to AccessLogger.
type AccessLoggerFunc func(AccessLogEvent)

// LogAccess implements AccessLogger.
func (f AccessLoggerFunc) LogAccess(event AccessLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopAccessLogger struct{}

func (noopAccessLogger) LogAccess(AccessLogEvent) {}

// WithAccessLogger attaches an access logger to the Accessor.
func WithAccessLogger(logger AccessLogger) Option {
	return func(cfg *accessorConfig) {
		if logger == nil {
			cfg.logger = noopAccessLogger{}
			return
		}
		cfg.logger = logger
	}
}
