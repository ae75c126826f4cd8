package logger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Ошибки пакета logger.
var (
	ErrLoggerNotFound   = errors.New("logger not found in context")
	ErrInitGlobalLogger = errors.New("failed to initialize global logger")
)

var (
	globalMu sync.RWMutex
	global   *Logger
	fallback *Logger
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// fallback пишет только warn и выше, пока глобальный logger не настроен.
func init() {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zapLogger, err := config.Build()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	fallback = &Logger{l: zapLogger.With(zap.String("logger", "fallback"))}
}

// NewContext кладет logger в контекст.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext извлекает logger из контекста.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context validation: %w", ErrLoggerNotFound)
	}
	logger, ok := ctx.Value(loggerKey).(*Logger)
	if !ok {
		return nil, fmt.Errorf("logger lookup: %w", ErrLoggerNotFound)
	}
	return logger, nil
}

// InitGlobalLoggerWithLevel создает глобальный logger, если он еще не задан.
func InitGlobalLoggerWithLevel(env Environment, level string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return nil
	}

	logger, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	global = logger
	return nil
}

// SetGlobalLogger заменяет глобальный logger.
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = logger
}

// Log возвращает logger из контекста, затем глобальный, затем резервный.
func Log(ctx context.Context) *Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
			return logger
		}
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	if global != nil {
		return global
	}
	return fallback
}
