package logger

import (
	"io"
	"log/slog"
	"os"
)

// serviceName is attached to every record so aggregated logs from the ledger
// API stay identifiable next to other services.
const serviceName = "smlcredit-api"

// Log is the global logger instance. It works before Setup so library code
// and tests can log without initialization.
var Log = New("development", os.Stdout)

// New builds a logger for the given environment: JSON in production, text
// otherwise, always tagged with the service name.
func New(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("service", serviceName))
}

// Setup initializes the global logger based on the environment
func Setup(env string) {
	Log = New(env, os.Stdout)
	slog.SetDefault(Log)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}
