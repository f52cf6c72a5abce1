package interfaces

import "context"

// Logger is the leveled logger every pipeline stage writes to. The method set
// matches github.com/goliatone/go-logger so its loggers plug in directly.
// Arguments after msg are key/value pairs.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	// WithContext returns a logger that reads run fields such as run_id from ctx.
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out loggers by module name, e.g. wpmigrate.extract.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry fields on every entry.
// Use logging.WithFields instead of asserting for it directly.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
