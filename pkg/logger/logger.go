// Package logger оборачивает zap и связывает логгер с контекстом запроса.
package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment определяет режим работы логгера.
type Environment string

// Поддерживаемые режимы.
const (
	Development Environment = "development"
	Production  Environment = "production"
)

// RequestID - имя поля с идентификатором запроса.
const RequestID = "request_id"

// Logger - обертка над zap.Logger, добавляющая request_id из контекста.
type Logger struct {
	l *zap.Logger
}

// NewLogger создает logger для указанного окружения и уровня.
// Неизвестный уровень трактуется как info.
func NewLogger(env Environment, level string) (*Logger, error) {
	var config zap.Config
	if env == Production {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return &Logger{l: zapLogger}, nil
}

// NewFromZap оборачивает готовый zap.Logger, удобно для тестов с zaptest/observer.
func NewFromZap(zapLogger *zap.Logger) *Logger {
	return &Logger{l: zapLogger}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// With возвращает новый logger с дополнительными полями.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l: l.l.With(fields...)}
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Info(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Warn(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Error(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Debug(msg, addRequestID(ctx, fields)...)
}

func (l *Logger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Fatal(msg, addRequestID(ctx, fields)...)
}

// Sync сбрасывает буферы zap.
func (l *Logger) Sync() error {
	return l.l.Sync()
}

func addRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if id, ok := GetRequestID(ctx); ok {
		return append(fields, zap.String(RequestID, id))
	}
	return fields
}
