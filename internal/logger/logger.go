// Package logger sets up structured logging: zap underneath, logr on top,
// propagated through context.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"
	VersionKey   = "version"
	CommandKey   = "command"
)

var (
	mu sync.Mutex

	globalZapLogger  *zap.Logger
	globalLogrLogger *logr.Logger
	closeSink        func()

	defaultNoopLogger = logr.Discard()
)

// Options configures Setup.
type Options struct {
	// Level is debug, info, warn or error.
	Level string
	// File receives JSON lines. Empty means stderr.
	File    string
	Version string
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(strings.ToLower(level))
}

// Setup builds the global logger. Calling it again replaces the previous
// logger and closes its file.
func Setup(opts Options) (*logr.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	sink := zapcore.Lock(os.Stderr)
	closeFn := func() {}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		ws, c, err := zap.Open(opts.File)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		sink, closeFn = ws, c
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		sink,
		zap.NewAtomicLevelAt(level),
	)
	if opts.Version != "" {
		core = core.With([]zapcore.Field{zap.String(VersionKey, opts.Version)})
	}

	zl := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
	gl := zapr.NewLogger(zl)

	mu.Lock()
	defer mu.Unlock()
	if globalZapLogger != nil {
		_ = globalZapLogger.Sync()
	}
	if closeSink != nil {
		closeSink()
	}
	globalZapLogger = zl
	globalLogrLogger = &gl
	closeSink = closeFn

	return globalLogrLogger, nil
}

// WithLogger returns a new context with the provided logr.Logger attached.
// If the context already carries the same logger it is returned unchanged.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext retrieves the logr.Logger from the context, falling back to
// the global logger and then to a no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	return Global()
}

// Global returns the logger built by Setup, or a no-op logger.
func Global() *logr.Logger {
	mu.Lock()
	defer mu.Unlock()
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// Noop returns a logger that discards everything.
func Noop() *logr.Logger {
	return &defaultNoopLogger
}

// Sync flushes buffered entries. Call it before exit.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if globalZapLogger == nil {
		return
	}
	if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
	}
}

// isIgnorableSyncError reports the errors Sync returns for terminals and pipes.
func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EIO) ||
		errors.Is(err, syscall.EBADF)
}
