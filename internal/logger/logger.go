package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/NeverVane/histpick/internal/config"
)

// Logger wraps zerolog.Logger with additional functionality
type Logger struct {
	zerolog.Logger
	level  zerolog.Level
	output io.Writer
}

var globalLogger *Logger

// Init builds the global logger from the [log] section. A verbose run logs
// at debug level whatever the configured level is. Every logger built from
// it carries the session_id of this run.
func Init(cfg *config.LogConfig, verbose bool) error {
	if cfg == nil {
		cfg = &config.LogConfig{Level: "error", Output: "stderr"}
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	levelName := cfg.Level
	if verbose {
		levelName = "debug"
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %s: %w", levelName, err)
	}

	output, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}

	// console formatting only makes sense on a terminal stream
	if cfg.Color && (cfg.Output == "stdout" || cfg.Output == "stderr") {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(output).Level(level).With().Str("session_id", uuid.NewString())
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}

	globalLogger = &Logger{
		Logger: ctx.Logger(),
		level:  level,
		output: output,
	}
	log.Logger = globalLogger.Logger

	return nil
}

func openOutput(dest string) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "", "stderr":
		return os.Stderr, nil
	case "discard":
		return io.Discard, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	if globalLogger == nil {
		_ = Init(nil, false)
	}
	return globalLogger
}

// WithField adds a field to the logger context
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.With().Interface(key, value).Logger(),
		level:  l.level,
		output: l.output,
	}
}

// WithError adds an error field to the logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With().Err(err).Logger(),
		level:  l.level,
		output: l.output,
	}
}

// WithComponent adds a component field for structured logging
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// History creates a logger with history model context
func (l *Logger) History() *Logger {
	return l.WithComponent("history")
}

// Store creates a logger with storage context
func (l *Logger) Store() *Logger {
	return l.WithComponent("store")
}

// Search creates a logger with search context
func (l *Logger) Search() *Logger {
	return l.WithComponent("search")
}

// TUI creates a logger with TUI context
func (l *Logger) TUI() *Logger {
	return l.WithComponent("tui")
}

// Shell creates a logger with shell integration context
func (l *Logger) Shell() *Logger {
	return l.WithComponent("shell")
}

// Security creates a logger with file permission context
func (l *Logger) Security() *Logger {
	return l.WithComponent("security")
}

// Config creates a logger with configuration context
func (l *Logger) Config() *Logger {
	return l.WithComponent("config")
}

// Performance logs the duration of an operation
func (l *Logger) Performance(operation string, duration time.Duration) {
	l.Debug().
		Str("perf_operation", operation).
		Dur("duration", duration).
		Msg("performance metric")
}

// WithComponent returns the global logger tagged with component
func WithComponent(component string) *Logger {
	return GetLogger().WithComponent(component)
}
