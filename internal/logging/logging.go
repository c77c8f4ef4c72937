// Package logging builds the logr loggers used across the engines.
//
// Engines read their logger from the context with FromContext and log through
// verbosity levels: plain Info for outcomes, V(DEBUG) for decisions and V(TRACE)
// for per-iteration search state.
package logging

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels passed to logr's V().
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

var (
	mu            sync.RWMutex
	defaultLogger = logr.Discard()
)

// ParseLevel maps a level name to a zap level. logr verbosity n is zap level -n.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.Level(-DEBUG), nil
	case "trace":
		return zapcore.Level(-TRACE), nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// NewLogger builds a production JSON logger at the given level.
func NewLogger(level string) (logr.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	zapLog, err := config.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zapLog), nil
}

// NewTestLogger installs a development logger at TRACE verbosity as the default
// and returns it. Test suites call it before RunSpecs.
func NewTestLogger() logr.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.Level(-TRACE))
	zapLog, err := config.Build()
	if err != nil {
		return logr.Discard()
	}
	logger := zapr.NewLogger(zapLog)
	SetDefault(logger)
	return logger
}

// SetDefault replaces the logger returned by FromContext when the context carries none.
func SetDefault(logger logr.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// Default returns the process-wide fallback logger.
func Default() logr.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) logr.Logger {
	if ctx != nil {
		if logger, err := logr.FromContext(ctx); err == nil {
			return logger
		}
	}
	return Default()
}

// IntoContext stores a logger in ctx.
func IntoContext(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}
