package zerologr

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/huangjunwen/fbcanal/logr"
)

// Logger is implements github.com/huangjunwen/fbcanal/logr::Logger interface using
// github.com/rs/zerolog::Logger.
type Logger zerolog.Logger

var (
	_ logr.Logger = (*Logger)(nil)
)

// New creates a Logger writing json lines to w at the given level name
// ("debug", "info", "warn" ...). An empty level means info.
func New(w io.Writer, level string) (*Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(level)
		if err != nil {
			return nil, err
		}
	}
	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return (*Logger)(&l), nil
}

func withKeysAndValues(ev *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		ev = ev.Interface(keyString(keysAndValues[i]), keysAndValues[i+1])
	}
	return ev
}

func keyString(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

func (logger *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l := (*zerolog.Logger)(logger)
	withKeysAndValues(l.Debug(), keysAndValues).Msg(msg)
}

func (logger *Logger) Info(msg string, keysAndValues ...interface{}) {
	l := (*zerolog.Logger)(logger)
	withKeysAndValues(l.Info(), keysAndValues).Msg(msg)
}

func (logger *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l := (*zerolog.Logger)(logger)
	withKeysAndValues(l.Warn(), keysAndValues).Msg(msg)
}

func (logger *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l := (*zerolog.Logger)(logger)
	withKeysAndValues(l.Error().Err(err), keysAndValues).Msg(msg)
}

func (logger *Logger) WithValues(keysAndValues ...interface{}) logr.Logger {
	ctx := (*zerolog.Logger)(logger).With()
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		ctx = ctx.Interface(keyString(keysAndValues[i]), keysAndValues[i+1])
	}
	l := ctx.Logger()
	return (*Logger)(&l)
}
