// Package logger wraps log/slog. Console output goes through tint; JSON is
// available for log shippers. Components receive an Interface, never the
// package-level logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/civictrack/civictrack/internal/shared/config"
)

var (
	current   *slog.Logger
	currentMu sync.RWMutex
)

// Init builds the process-wide logger. In debug mode every record carries
// its source location; otherwise only warnings and errors do.
func Init(cfg *config.LoggerConfig, debug bool) error {
	writer, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}

	sourceFrom := slog.LevelWarn
	if debug {
		sourceFrom = slog.LevelDebug
	}

	l := slog.New(newHandler(writer, cfg.Format, parseLevel(cfg.Level), sourceFrom))
	slog.SetDefault(l)

	currentMu.Lock()
	current = l
	currentMu.Unlock()
	return nil
}

// Get returns the process-wide logger, building a console default when Init
// has not run (tests, one-off tools).
func Get() *slog.Logger {
	currentMu.RLock()
	l := current
	currentMu.RUnlock()
	if l != nil {
		return l
	}

	currentMu.Lock()
	defer currentMu.Unlock()
	if current == nil {
		current = slog.New(newHandler(os.Stdout, "console", slog.LevelInfo, slog.LevelWarn))
	}
	return current
}

func newHandler(w io.Writer, format string, level, sourceFrom slog.Level) slog.Handler {
	if strings.EqualFold(format, "json") {
		return newSourceHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), sourceFrom)
	}

	return newSourceHandler(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    !isTerminal(w),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if err, ok := a.Value.Any().(error); ok && a.Key == "error" {
				return tint.Err(err)
			}
			return a
		},
	}), sourceFrom)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openOutput(path string) (io.Writer, error) {
	switch strings.ToLower(path) {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// Sync exists so callers can defer it; slog writes synchronously.
func Sync() error {
	return nil
}
