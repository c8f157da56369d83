package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config holds logger configuration.
type Config struct {
	Level             string `env:"LOG_LEVEL" envDefault:"info" yaml:"level"`
	Format            string `env:"LOG_FORMAT" envDefault:"json" yaml:"format"`
	SentryDSN         string `env:"SENTRY_DSN" yaml:"sentry_dsn"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production" yaml:"sentry_environment"`
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
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

// New creates a logger writing to stdout. Attributes stored with ContextWithAttrs
// are always added; extra extractors run after them.
// If cfg.SentryDSN is set, warnings and errors are also sent to Sentry.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return newLogger(os.Stdout, cfg, extractors...)
}

func newLogger(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var out slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		out = slog.NewTextHandler(w, handlerOpts)
	} else {
		out = slog.NewJSONHandler(w, handlerOpts)
	}

	extractors = append([]ContextExtractor{contextAttrs}, extractors...)

	if cfg.SentryDSN == "" {
		return slog.New(NewContextHandler(out, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		// Graceful degradation: keep logging to stdout
		slog.New(out).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(out, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(newMultiHandler(out, sentryHandler), extractors...))
}
