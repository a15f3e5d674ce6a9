// Package logging adapts zerolog to the flasher.Logger interface.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger writes key-value log lines through zerolog.
type Logger struct {
	zl zerolog.Logger
}

// New returns a console logger writing to w at the given level.
// Level names are those of zerolog: debug, info, warn, error, disabled.
func New(w io.Writer, level string, noColor bool) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}
	return &Logger{zl: zerolog.New(out).Level(lvl).With().Timestamp().Logger()}, nil
}

// FromZerolog wraps an existing zerolog logger.
func FromZerolog(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl}
}

// ParseLevel parses a level name. An empty name means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(level)
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.zl.Debug().Fields(pairs(keysAndValues)).Msg(msg)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.zl.Info().Fields(pairs(keysAndValues)).Msg(msg)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.zl.Error().Fields(pairs(keysAndValues)).Msg(msg)
}

// pairs drops a trailing key without value and replaces non-string keys.
func pairs(kv []interface{}) []interface{} {
	if len(kv)%2 == 1 {
		kv = kv[:len(kv)-1]
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = "!badkey"
		}
		out = append(out, key, kv[i+1])
	}
	return out
}
