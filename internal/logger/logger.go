// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package logger

import (
	"context"
	"io"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

type (
	// LogLevel names a logging threshold.
	LogLevel string

	// Logger defines the interface for structured logging.
	Logger interface {
		Debug(msg string, keyvals ...any)
		Info(msg string, keyvals ...any)
		Warn(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
		With(keyvals ...any) Logger
	}

	loggerImpl struct {
		charmLogger *charmlog.Logger
	}

	ctxKey string
)

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	DisabledLevel LogLevel = "disabled"

	// LoggerCtxKey stores a Logger on a context.
	LoggerCtxKey ctxKey = "logger"
)

var (
	defaultMx     sync.RWMutex
	defaultLogger Logger = NewLogger(DefaultConfig())
)

func (l LogLevel) String() string {
	return string(l)
}

// ToCharmlogLevel maps a level to its charm equivalent. Unknown levels map to info.
func (l LogLevel) ToCharmlogLevel() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	case DisabledLevel:
		return charmlog.Level(1000)
	default:
		return charmlog.InfoLevel
	}
}

func (l *loggerImpl) Debug(msg string, keyvals ...any) {
	l.charmLogger.Debug(msg, keyvals...)
}

func (l *loggerImpl) Info(msg string, keyvals ...any) {
	l.charmLogger.Info(msg, keyvals...)
}

func (l *loggerImpl) Warn(msg string, keyvals ...any) {
	l.charmLogger.Warn(msg, keyvals...)
}

func (l *loggerImpl) Error(msg string, keyvals ...any) {
	l.charmLogger.Error(msg, keyvals...)
}

func (l *loggerImpl) With(keyvals ...any) Logger {
	return &loggerImpl{charmLogger: l.charmLogger.With(keyvals...)}
}

// Config tunes a logger.
type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
}

// DefaultConfig logs info and above to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		TimeFormat: "15:04:05",
	}
}

// TestConfig silences everything but errors.
func TestConfig() *Config {
	return &Config{
		Level:      ErrorLevel,
		Output:     io.Discard,
		TimeFormat: "15:04:05",
	}
}

// NewLogger returns a charm backed logger.
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	charmLogger := charmlog.NewWithOptions(out, charmlog.Options{
		ReportCaller:    cfg.AddSource,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.ToCharmlogLevel(),
		Prefix:          "ppadmin",
	})
	if cfg.JSON {
		charmLogger.SetFormatter(charmlog.JSONFormatter)
	} else {
		charmLogger.SetFormatter(charmlog.TextFormatter)
	}

	return &loggerImpl{charmLogger: charmLogger}
}

// NewForTests returns a logger that discards output.
func NewForTests() Logger {
	return NewLogger(TestConfig())
}

// SetDefault replaces the process wide logger.
func SetDefault(l Logger) {
	if l == nil {
		return
	}
	defaultMx.Lock()
	defer defaultMx.Unlock()
	defaultLogger = l
}

// GetDefault returns the process wide logger.
func GetDefault() Logger {
	defaultMx.RLock()
	defer defaultMx.RUnlock()
	return defaultLogger
}

// ContextWithLogger attaches l to ctx.
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, l)
}

// FromContext returns the context logger or the default one.
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return GetDefault()
	}
	if l, ok := ctx.Value(LoggerCtxKey).(Logger); ok && l != nil {
		return l
	}
	return GetDefault()
}

// SetupLogger installs a default logger writing to w at the given level.
func SetupLogger(level string, json bool, w io.Writer) Logger {
	l := NewLogger(&Config{
		Level:      LogLevel(level),
		Output:     w,
		JSON:       json,
		TimeFormat: "15:04:05",
	})
	SetDefault(l)

	return l
}

func Debug(msg string, args ...any) { GetDefault().Debug(msg, args...) }
func Info(msg string, args ...any)  { GetDefault().Info(msg, args...) }
func Warn(msg string, args ...any)  { GetDefault().Warn(msg, args...) }
func Error(msg string, args ...any) { GetDefault().Error(msg, args...) }
