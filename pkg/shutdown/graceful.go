// Package shutdown ожидает SIGINT/SIGTERM и выполняет хуки остановки.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"libraryhub/pkg/logger"
)

// Hook функция остановки компонента.
type Hook func(context.Context) error

// Wait блокируется до сигнала или отмены ctx, затем параллельно запускает хуки
// в пределах timeout и возвращает объединенную ошибку.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	logger.Log(ctx).Info(ctx, "shutdown signal received", zap.Duration("timeout", timeout))

	return Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет хуки параллельно с общим таймаутом.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
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
	case <-ctx.Done():
		mu.Lock()
		errs = append(errs, ctx.Err())
		mu.Unlock()
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
