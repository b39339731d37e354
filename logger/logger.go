// Package logger wraps zerolog with the conventions used across the
// service: a component field per subsystem, request/correlation IDs
// pulled from context, and a process-wide default logger initialized at
// boot.
package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with service context.
type Logger struct {
	logger  zerolog.Logger
	service string
}

var globalLogger *Logger

// Init initializes the process-wide default logger.
func Init(cfg Config, service string) {
	cfg.ApplyDefaults()
	globalLogger = New(cfg, service)
}

// Default returns the process-wide logger, creating a fallback if Init
// was never called.
func Default() *Logger {
	if globalLogger == nil {
		globalLogger = New(Config{}, "lerpz-auth")
	}
	return globalLogger
}

// New creates a logger from configuration.
func New(cfg Config, service string) *Logger {
	cfg.ApplyDefaults()

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}

	var zl zerolog.Logger
	if strings.ToLower(cfg.Format) == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out})
	} else {
		zl = zerolog.New(out)
	}
	zl = zl.Level(level).With().Timestamp().Str("service", service).Logger()

	return &Logger{logger: zl, service: service}
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		logger:  l.logger.With().Str("component", name).Logger(),
		service: l.service,
	}
}

// WithContext returns a logger enriched with the request ID from
// context, when present.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if v := ctx.Value(requestIDKey{}); v != nil {
		return &Logger{
			logger:  l.logger.With().Str("request_id", fmt.Sprintf("%v", v)).Logger(),
			service: l.service,
		}
	}
	return l
}

// Zerolog exposes the underlying zerolog.Logger.
func (l *Logger) Zerolog() zerolog.Logger { return l.logger }

// Debug logs a debug message with optional fields.
func (l *Logger) Debug(msg string, fields ...map[string]any) {
	addFields(l.logger.Debug(), fields...).Msg(msg)
}

// Info logs an info message with optional fields.
func (l *Logger) Info(msg string, fields ...map[string]any) {
	addFields(l.logger.Info(), fields...).Msg(msg)
}

// Warn logs a warning with optional fields.
func (l *Logger) Warn(msg string, fields ...map[string]any) {
	addFields(l.logger.Warn(), fields...).Msg(msg)
}

// Error logs an error with optional fields.
func (l *Logger) Error(msg string, fields ...map[string]any) {
	addFields(l.logger.Error(), fields...).Msg(msg)
}

func addFields(event *zerolog.Event, fields ...map[string]any) *zerolog.Event {
	for _, m := range fields {
		for k, v := range m {
			event = event.Interface(k, v)
		}
	}
	return event
}

type requestIDKey struct{}

// ContextWithRequestID attaches a request ID for WithContext to pick up.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}
