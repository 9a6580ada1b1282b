package leaselite

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/davidroman0O/leaselite/internal/logs"
)

// Logger is the interface that wraps the basic logging methods.
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...interface{})
	Info(ctx context.Context, msg string, keysAndValues ...interface{})
	Warn(ctx context.Context, msg string, keysAndValues ...interface{})
	Error(ctx context.Context, msg string, keysAndValues ...interface{})
	WithFields(fields map[string]interface{}) Logger
}

type LogFormat string

const (
	TextFormat   LogFormat = "text"
	JSONFormat   LogFormat = "json"
	PrettyFormat LogFormat = "pretty"
)

type defaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger writes to stdout.
func NewDefaultLogger(level slog.Leveler, format LogFormat) Logger {
	return NewWriterLogger(os.Stdout, level, format)
}

func NewWriterLogger(w io.Writer, level slog.Leveler, format LogFormat) Logger {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case JSONFormat:
		return NewLogger(slog.NewJSONHandler(w, opts))
	case PrettyFormat:
		return NewLogger(logs.NewPrettyHandler(w, level))
	default:
		return NewLogger(slog.NewTextHandler(w, opts))
	}
}

// NewLogger adapts any slog handler.
func NewLogger(handler slog.Handler) Logger {
	return &defaultLogger{logger: slog.New(handler)}
}

// ParseLevel accepts debug, info, warn and error, anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (l *defaultLogger) Debug(ctx context.Context, msg string, keysAndValues ...interface{}) {
	l.logger.DebugContext(ctx, msg, keysAndValues...)
}

func (l *defaultLogger) Info(ctx context.Context, msg string, keysAndValues ...interface{}) {
	l.logger.InfoContext(ctx, msg, keysAndValues...)
}

func (l *defaultLogger) Warn(ctx context.Context, msg string, keysAndValues ...interface{}) {
	l.logger.WarnContext(ctx, msg, keysAndValues...)
}

func (l *defaultLogger) Error(ctx context.Context, msg string, keysAndValues ...interface{}) {
	l.logger.ErrorContext(ctx, msg, keysAndValues...)
}

func (l *defaultLogger) WithFields(fields map[string]interface{}) Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &defaultLogger{logger: l.logger.With(args...)}
}
