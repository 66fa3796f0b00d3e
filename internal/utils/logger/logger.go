package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"boothadmin/internal/app/client/config"
	"boothadmin/internal/utils/logger/slogpretty"
)

// New создает логгер для окружения: local - цветной вывод, dev - JSON с
// уровнем debug, prod - JSON с уровнем info. Логи идут в stderr, чтобы не
// смешиваться с выводом команд.
func New(env string) *slog.Logger {
	return NewWithLevel(env, "", os.Stderr)
}

// NewWithLevel - как New, но непустой level переопределяет уровень окружения.
func NewWithLevel(env, level string, w io.Writer) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return setupPrettySlogTo(w, parseLevel(level, slog.LevelDebug))
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level, slog.LevelDebug)}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level, slog.LevelInfo)}))
	}
}

func setupPrettySlog() *slog.Logger {
	return setupPrettySlogTo(os.Stderr, slog.LevelDebug)
}

func setupPrettySlogTo(w io.Writer, level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	return slog.New(opts.NewPrettyHandler(w))
}

func parseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
