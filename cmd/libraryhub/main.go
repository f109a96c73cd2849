// Команда libraryhub запускает API библиотеки и служебные операции.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"libraryhub/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "LIBRARY_ENV"
	EnvLoggerLevel = "LIBRARY_LOGGER_LEVEL"
)

const (
	ErrInitLogger = "failed to initialize logger"
	ErrSyncLogger = "failed to sync logger"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

func main() {
	env := logger.Production
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == string(logger.Development) {
		env = logger.Development
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := logger.Log(ctx).Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		if err := newRootCmd().ExecuteContext(ctx); err != nil {
			exitCode = 1
		}
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
