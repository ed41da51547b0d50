// Package logging provides structured logging for pagecraft.
package logging

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"
)

// Logger is the interface for structured logging.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field represents a log field.
type Field struct {
	Key   string
	Value any
}

// Common field constructors

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// SlogLogger implements Logger using slog.
type SlogLogger struct {
	logger *slog.Logger
}

type loggerConfig struct {
	level  slog.Level
	output io.Writer
	json   bool
}

// Option configures the logger.
type Option func(*loggerConfig)

// WithLevel sets the log level.
func WithLevel(level slog.Level) Option {
	return func(c *loggerConfig) {
		c.level = level
	}
}

// ParseLevel maps a level name to its slog level. Unknown names fall back
// to info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *loggerConfig) {
		c.output = w
	}
}

// WithJSON enables JSON output.
func WithJSON() Option {
	return func(c *loggerConfig) {
		c.json = true
	}
}

// New creates a slog-backed logger.
func New(opts ...Option) *SlogLogger {
	config := &loggerConfig{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(config)
	}

	var handler slog.Handler
	if config.json {
		handler = slog.NewJSONHandler(config.output, &slog.HandlerOptions{Level: config.level})
	} else {
		handler = slog.NewTextHandler(config.output, &slog.HandlerOptions{Level: config.level})
	}
	return &SlogLogger{logger: slog.New(handler)}
}

func (l *SlogLogger) toAttrs(fields []Field) []any {
	attrs := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		attrs = append(attrs, f.Key, f.Value)
	}
	return attrs
}

func (l *SlogLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, l.toAttrs(fields)...)
}

func (l *SlogLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, l.toAttrs(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, l.toAttrs(fields)...)
}

func (l *SlogLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, l.toAttrs(fields)...)
}

// With returns a logger with additional fields.
func (l *SlogLogger) With(fields ...Field) Logger {
	return &SlogLogger{logger: l.logger.With(l.toAttrs(fields)...)}
}

// NopLogger is a logger that does nothing.
type NopLogger struct{}

func (NopLogger) Debug(msg string, fields ...Field) {}
func (NopLogger) Info(msg string, fields ...Field)  {}
func (NopLogger) Warn(msg string, fields ...Field)  {}
func (NopLogger) Error(msg string, fields ...Field) {}
func (l NopLogger) With(fields ...Field) Logger     { return l }

// RequestLogger logs HTTP requests with method, path, status, and timing.
func RequestLogger(logger Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			logger.Info("request",
				String("method", r.Method),
				String("path", r.URL.Path),
				Int("status", rw.status),
				Duration("duration", time.Since(start)),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

// Unwrap exposes the underlying writer for http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Hijack hands the connection over for protocol upgrades. Websocket
// libraries assert http.Hijacker directly, so Unwrap alone is not enough.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(rw.ResponseWriter).Hijack()
}

// ContextWithLogger adds a logger to the context.
func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromContext retrieves a logger from context, falling back to a no-op.
func FromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(Logger); ok {
		return logger
	}
	return NopLogger{}
}

type loggerContextKey struct{}
