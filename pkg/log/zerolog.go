package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/toxiclf/pkg/errors"
)

// ZerologLogger implements Logger on top of zerolog. Records are written as
// one JSON object per line.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger creates a JSON logger writing to w that drops records
// below level.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).
		Level(toZerologLevel(level)).
		With().
		Timestamp().
		Logger()
	return &ZerologLogger{logger: zl}
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	emit(l.logger.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	emit(l.logger.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	emit(l.logger.Warn(), msg, fields)
}

// Error implements Logger.Error. A leading error field is attached with
// its stack trace.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	event := l.logger.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			event = event.Stack().Err(err)
			fields = fields[1:]
		}
	}
	emit(event, msg, fields)
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{
		logger: l.logger.With().Fields(normalizeFields(fields)).Logger(),
	}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	zl := toZerologLevel(level)
	return zl >= l.logger.GetLevel() && zl >= zerolog.GlobalLevel()
}

func emit(event *zerolog.Event, msg string, fields []any) {
	if event == nil {
		return
	}
	event.Fields(normalizeFields(fields)).Msg(msg)
}

// normalizeFields turns loosely typed key/value pairs into the slice form
// zerolog accepts. Keys are stringified and a dangling key gets a nil value.
func normalizeFields(fields []any) []interface{} {
	out := make([]interface{}, 0, len(fields)+1)
	for i := 0; i < len(fields); i += 2 {
		out = append(out, fmt.Sprint(fields[i]))
		if i+1 < len(fields) {
			out = append(out, fields[i+1])
		} else {
			out = append(out, nil)
		}
	}
	return out
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, errors.NewValidationError("log.level", "must be one of debug, info, warn, error", level)
	}
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewZerologLogger(os.Stderr, LevelInfo)
)

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetLogger replaces the process-wide logger. A nil logger is ignored.
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// SetupLogger installs a zerolog-backed process-wide logger writing to w.
func SetupLogger(level string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	SetLogger(NewZerologLogger(w, lvl))
	return nil
}
