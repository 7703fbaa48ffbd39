// Package log wraps log/slog with component-scoped loggers and the
// field vocabulary shared across the application.
package log

import (
	"log/slog"
	"os"
)

// Logger is a slog.Logger that stamps every record with its component.
type Logger struct {
	*slog.Logger
	base      *slog.Logger
	component string
}

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// DefaultConfig returns sensible defaults for logging
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Component: ComponentApp,
	}
}

// New creates a new logger with the given configuration
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.Level,
		})
	}

	base := slog.New(handler)
	l := base
	if config.Component != "" {
		l = base.With(FieldComponent, config.Component)
	}
	return &Logger{
		Logger:    l,
		base:      base,
		component: config.Component,
	}
}

// WithComponent returns a logger scoped to a component name. The
// component attribute is rebuilt from the base logger, so deriving from
// an already-scoped logger does not stack attributes.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.base.With(FieldComponent, component),
		base:      l.base,
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

var defaultLogger = New(DefaultConfig())

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger
}

// ForComponent derives a component-scoped logger from the process-wide
// logger.
func ForComponent(component string) *Logger {
	return defaultLogger.WithComponent(component)
}

// SetDefault installs the logger as the process-wide default, for this
// package and for plain slog callers.
func SetDefault(logger *Logger) {
	defaultLogger = logger
	slog.SetDefault(logger.Logger)
}
