package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Option configures the logger built by New.
type Option func(*options)

type options struct {
	level     slog.Level
	json      bool
	output    io.Writer
	attrs     []slog.Attr
	addSource bool
}

// New creates a structured logger. Without options it writes text records
// at info level to stdout.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     o.level,
		AddSource: o.addSource,
	}

	var h slog.Handler
	if o.json {
		h = slog.NewJSONHandler(o.output, handlerOpts)
	} else {
		h = slog.NewTextHandler(o.output, handlerOpts)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}

	return slog.New(h)
}

// Discard returns a logger that drops every record.
// Library packages use it as their default so they stay silent unless configured.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithLevelString sets the minimum level from its name (debug, info, warn, error).
// Unknown names keep the current level.
func WithLevelString(level string) Option {
	return func(o *options) {
		if l, ok := ParseLevel(level); ok {
			o.level = l
		}
	}
}

// WithJSONFormatter switches the output to JSON records.
func WithJSONFormatter() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithTextFormatter switches the output to logfmt-style text records.
func WithTextFormatter() Option {
	return func(o *options) {
		o.json = false
	}
}

// WithOutput sets the destination writer.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr adds attributes attached to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// WithDevelopment configures text output at debug level with source locations.
func WithDevelopment(service string) Option {
	return func(o *options) {
		o.level = slog.LevelDebug
		o.json = false
		o.addSource = true
		o.attrs = append(o.attrs, slog.String("service", service), slog.String("env", "development"))
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return func(o *options) {
		o.level = slog.LevelInfo
		o.json = true
		o.attrs = append(o.attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

// ForEnv picks WithDevelopment or WithProduction from an APP_ENV style value.
func ForEnv(env, service string) Option {
	switch strings.ToLower(env) {
	case "prod", "production", "staging":
		return WithProduction(service)
	default:
		return WithDevelopment(service)
	}
}

// ParseLevel converts a level name to slog.Level.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
