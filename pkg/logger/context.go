package logger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	ErrLoggerNotFound   = errors.New("logger not found in context")
	ErrInitGlobalLogger = errors.New("failed to initialize global logger")
)

var (
	globalMu       sync.RWMutex
	globalLogger   *Logger
	fallbackLogger *Logger
)

type loggerKey struct{}

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zl, err := cfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}
	fallbackLogger = &Logger{l: zl.With(zap.String("logger", "fallback"))}
}

// NewContext кладет логгер в контекст.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext извлекает логгер из контекста.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context: %w", ErrLoggerNotFound)
	}
	l, ok := ctx.Value(loggerKey{}).(*Logger)
	if !ok || l == nil {
		return nil, ErrLoggerNotFound
	}
	return l, nil
}

// InitGlobalLogger создает глобальный логгер, если он еще не задан.
func InitGlobalLogger(env Environment, level string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLogger != nil {
		return nil
	}

	l, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	globalLogger = l
	return nil
}

// SetGlobalLogger заменяет глобальный логгер.
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Log возвращает логгер из контекста, иначе глобальный, иначе резервный.
func Log(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*Logger); ok && l != nil {
			return l
		}
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger != nil {
		return globalLogger
	}
	return fallbackLogger
}
