// Package logger provides structured logging for the token versioning engine
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger wraps zerolog with engine-specific functionality
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Pretty     bool   // pretty-print for development
	Output     io.Writer
	WithCaller bool
}

// NewLogger creates a new structured logger
func NewLogger(cfg Config) *Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zlog := zerolog.New(output).
		With().
		Timestamp().
		Str("service", "tokenvault").
		Logger()

	if cfg.WithCaller {
		zlog = zlog.With().Caller().Logger()
	}

	return &Logger{zlog: zlog}
}

// GetZerolog returns the underlying zerolog logger
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zlog
}

// Info logs an info message
func (l *Logger) Info(msg string) *zerolog.Event {
	return l.zlog.Info().Str("msg", msg)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) *zerolog.Event {
	return l.zlog.Debug().Str("msg", msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) *zerolog.Event {
	return l.zlog.Warn().Str("msg", msg)
}

// Error logs an error message
func (l *Logger) Error(msg string) *zerolog.Event {
	return l.zlog.Error().Str("msg", msg)
}

// HistoryLogger returns a logger for version-store operations
func (l *Logger) HistoryLogger(operation string) *Logger {
	return &Logger{
		zlog: l.zlog.With().
			Str("component", "history").
			Str("operation", operation).
			Logger(),
	}
}

// MigrationLogger returns a logger for migration runs
func (l *Logger) MigrationLogger(fromVersion, toVersion string) *Logger {
	return &Logger{
		zlog: l.zlog.With().
			Str("component", "migrate").
			Str("from_version", fromVersion).
			Str("to_version", toVersion).
			Logger(),
	}
}

// LogVersionCreated logs a successful createVersion with structured fields
func (l *Logger) LogVersionCreated(version, parent, bump string, changeCount int, breaking bool) {
	l.zlog.Info().
		Str("component", "history").
		Str("version", version).
		Str("parent", parent).
		Str("bump", bump).
		Int("change_count", changeCount).
		Bool("breaking", breaking).
		Msg("Version created")
}

// LogMigrationStep logs one applied migration step
func (l *Logger) LogMigrationStep(fromVersion, toVersion string, rollback bool, duration time.Duration) {
	l.zlog.Debug().
		Str("component", "migrate").
		Str("from_version", fromVersion).
		Str("to_version", toVersion).
		Bool("rollback", rollback).
		Dur("duration_ms", duration).
		Msg("Migration step applied")
}

// LogPrune logs snapshot retention pruning
func (l *Logger) LogPrune(removed []string, retained int) {
	l.zlog.Info().
		Str("component", "history").
		Strs("removed", removed).
		Int("retained", retained).
		Msg("Old versions pruned")
}

// Global logger instance
var globalLogger *Logger

// InitGlobalLogger initializes the global logger
func InitGlobalLogger(cfg Config) {
	globalLogger = NewLogger(cfg)
	log.Logger = *globalLogger.GetZerolog()
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		InitGlobalLogger(Config{
			Level:  "info",
			Pretty: true,
		})
	}
	return globalLogger
}
