package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"libraryhub/internal/library/config"
	"libraryhub/pkg/logger"
)

const (
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "libraryhub",
		Short:         "Library loan service",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newReportCmd(),
		newUserAddCmd(),
	)
	return root
}

// loadConfig читает конфигурацию и пересоздает глобальный логгер по ее настройкам.
func loadConfig(ctx context.Context) (*config.Config, error) {
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)
	return cfg, nil
}
