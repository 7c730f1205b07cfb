// Package logr defines Logger interface.
package logr

// Logger is the structured, leveled logger used across fbcanal. Warn is for
// events that are dropped or skipped but do not fail the call.
type Logger interface {
	// Debug logs a verbose message with the given key/value pairs as context.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs a non-error message with the given key/value pairs as context.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a recoverable anomaly with the given key/value pairs as context.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error, with the given message and key/value pairs as context.
	Error(err error, msg string, keysAndValues ...interface{})

	// WithValues adds some key-value pairs of context to a logger.
	WithValues(keysAndValues ...interface{}) Logger
}

type nopLogger struct{}

func (l nopLogger) Debug(msg string, keysAndValues ...interface{}) {}

func (l nopLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l nopLogger) Warn(msg string, keysAndValues ...interface{}) {}

func (l nopLogger) Error(err error, msg string, keysAndValues ...interface{}) {}

func (l nopLogger) WithValues(keysAndValues ...interface{}) Logger { return nopLogger{} }

var (
	// Nop does nothing.
	Nop Logger = nopLogger{}
)
