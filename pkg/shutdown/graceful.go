// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notepad/pkg/logger"
)

const (
	LogSignalReceived  = "shutdown signal received"
	LogContextDone     = "parent context done, shutting down"
	LogHookFailed      = "shutdown hook failed"
	LogShutdownTimeout = "shutdown timed out before all hooks finished"
)

// Hook освобождает один ресурс приложения.
type Hook func(context.Context) error

// Wait блокирует выполнение до получения SIGINT/SIGTERM или отмены ctx,
// затем параллельно выполняет хуки в пределах timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	log := logger.Log(ctx)

	select {
	case sig := <-sigCh:
		log.Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, LogContextDone)
	}

	Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет хуки параллельно и ждет их завершения не дольше timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, LogHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, LogShutdownTimeout)
	}
}
