package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

type ctxKey string

const (
	ctxKeyTurnID ctxKey = "turn_id"
)

// global logger, JSON to stderr at warn until Setup redirects it.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(newLogger(os.Stderr, slog.LevelWarn))
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func Logger() *slog.Logger {
	return logger.Load()
}

// SetLogger replaces the global logger. Tests use it to capture output.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown names are warn.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

// Setup points the global logger at a file so the full-screen UI is not
// disturbed. An empty path discards all output. The returned func closes
// the file.
func Setup(path, level string) (func() error, error) {
	if path == "" {
		logger.Store(newLogger(io.Discard, ParseLevel(level)))
		return func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.Store(newLogger(f, ParseLevel(level)))
	return f.Close, nil
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return Logger().With(kv...)
}

// WithTurnID stores a turn_id in the context.
func WithTurnID(ctx context.Context, turnID string) context.Context {
	return context.WithValue(ctx, ctxKeyTurnID, turnID)
}

// LoggerFromContext adds turn_id if present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	turnID, _ := ctx.Value(ctxKeyTurnID).(string)
	if turnID == "" {
		return Logger()
	}
	return Logger().With("turn_id", turnID)
}
