package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Config describes how the process logger renders records.
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// ForEnvironment returns the preset for env. Development gets debug text
// output with source locations, production gets info-level JSON, and
// anything else falls back to info-level text.
func ForEnvironment(env string) Config {
	cfg := Config{
		Level:       LogLevelInfo,
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: normalizeEnvironment(env),
	}
	switch cfg.Environment {
	case EnvironmentDev:
		cfg.Level = LogLevelDebug
		cfg.AddSource = true
	case EnvironmentProduction:
		cfg.Format = LogFormatJSON
		cfg.Version = ProductionVersion
	}
	return cfg
}

// NewConfig starts from the environment preset and applies the explicit
// values. Empty strings keep the preset value.
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	cfg := ForEnvironment(environment)
	cfg.Level = orDefault(level, cfg.Level)
	cfg.Format = orDefault(format, cfg.Format)
	cfg.ServiceName = orDefault(serviceName, cfg.ServiceName)
	cfg.Version = orDefault(version, cfg.Version)
	cfg.AddSource = cfg.AddSource || addSource
	return cfg
}

// LogLevel maps Level to a slog level, defaulting to info.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record.
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}

// Handler builds the slog handler for w.
func (c Config) Handler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.LogLevel(), AddSource: c.AddSource}
	var h slog.Handler
	if c.IsJSON() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return h.WithAttrs(c.BaseAttributes())
}

func normalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case EnvironmentDev, "development", "local":
		return EnvironmentDev
	case EnvironmentProduction, "production":
		return EnvironmentProduction
	case EnvironmentStaging:
		return EnvironmentStaging
	case EnvironmentTest:
		return EnvironmentTest
	case "":
		return EnvironmentDev
	default:
		return strings.ToLower(env)
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
