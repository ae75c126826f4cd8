package logger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"notepad/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}
}

func TestWithCreatesNewInstance(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "info")
	require.NoError(t, err)

	newLog := log.With(zap.String("key", "value"))
	assert.NotNil(t, newLog)
	assert.NotSame(t, log, newLog)
}

func TestFromContext(t *testing.T) {
	t.Run("logger stored in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("no logger in context", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLogPrefersContextLogger(t *testing.T) {
	globalLogger, err := logger.NewLogger(logger.Production, "info")
	require.NoError(t, err)
	logger.SetGlobalLogger(globalLogger)

	ctxLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	assert.Same(t, globalLogger, logger.Log(context.Background()))
	assert.Same(t, ctxLogger, logger.Log(logger.NewContext(context.Background(), ctxLogger)))
}

func TestRequestIDIsAddedToEntries(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core))

	ctx := logger.NewRequestIDContext(context.Background(), "req-42")
	log.Info(ctx, "with id")
	log.Info(context.Background(), "without id")

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()[logger.RequestID])
	assert.NotContains(t, entries[1].ContextMap(), logger.RequestID)
}

func TestNewRequestIDContext(t *testing.T) {
	ctx := logger.NewRequestIDContext(context.Background(), " fixed ")
	id, ok := logger.GetRequestID(ctx)
	require.True(t, ok)
	assert.Equal(t, "fixed", id)

	_, ok = logger.GetRequestID(context.Background())
	assert.False(t, ok)
}

func TestResolveRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "client id is kept", incoming: "req-123", keep: true},
		{name: "uuid is kept", incoming: "0b5a7c9e-3f41-4d2a-9c1e-2f6b8d0a1e55", keep: true},
		{name: "longest allowed id is kept", incoming: strings.Repeat("a", logger.MaxRequestIDLength), keep: true},
		{name: "empty is replaced", incoming: ""},
		{name: "whitespace is replaced", incoming: "   "},
		{name: "too long is replaced", incoming: strings.Repeat("a", logger.MaxRequestIDLength+1)},
		{name: "inner space is replaced", incoming: "req 1"},
		{name: "newline is replaced", incoming: "req\nforged=1"},
		{name: "non-ASCII is replaced", incoming: "запрос"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := logger.ResolveRequestID(tt.incoming)

			if tt.keep {
				assert.Equal(t, tt.incoming, id)
				return
			}
			_, err := uuid.Parse(id)
			assert.NoError(t, err, "replacement should be a UUID")
		})
	}
}
