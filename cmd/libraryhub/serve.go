package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	libgrpc "libraryhub/internal/library/adapters/grpc"
	libhttp "libraryhub/internal/library/adapters/http"
	"libraryhub/internal/library/adapters/http/middleware"
	"libraryhub/pkg/db/postgres"
	"libraryhub/pkg/logger"
	"libraryhub/pkg/shutdown"
)

const (
	LogServiceStarted      = "library service started"
	LogServiceShutdownDone = "library service shutdown complete"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database"

	ErrStartHTTPServer = "failed to start HTTP server"
	ErrStartGRPCServer = "failed to start gRPC server"
	ErrMigrate         = "failed to apply migrations"
)

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.Log(ctx)

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	if migrate {
		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetDSN(), migrationsSource(cfg.Postgres.MigrationsPath)); err != nil {
			log.Error(ctx, ErrMigrate, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrMigrate, err)
		}
	}

	c, err := newContainer(ctx, cfg)
	if err != nil {
		return err
	}

	log.Info(ctx, LogInitHTTPServer)
	app := libhttp.NewApp(libhttp.ServerConfig{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
	})
	libhttp.SetupRouter(app, logger.Log(ctx), libhttp.Services{
		Auth:    c.auth,
		Users:   c.users,
		Authors: c.authors,
		Books:   c.books,
		Loans:   c.loans,
		Reports: c.reports,
		DB:      c.db,
	}, libhttp.RateLimits{
		Reads:  middleware.RateLimit{Max: cfg.RateLimit.Reads, Window: cfg.RateLimit.Window},
		Writes: middleware.RateLimit{Max: cfg.RateLimit.Writes, Window: cfg.RateLimit.Window},
		Login:  middleware.RateLimit{Max: cfg.RateLimit.Login, Window: cfg.RateLimit.Window},
	})

	grpcServer := libgrpc.New(ctx, cfg.GRPC.GetAddress())
	if err := grpcServer.Start(ctx); err != nil {
		c.Close(ctx)
		log.Error(ctx, ErrStartGRPCServer, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrStartGRPCServer, err)
	}

	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
		}
	}()

	err = shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
		grpcServer.Stop,
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return app.ShutdownWithContext(ctx)
		},
	)
	log.Info(ctx, LogClosingDatabase)
	c.Close(ctx)

	log.Info(ctx, LogServiceShutdownDone)
	return err
}

func migrationsSource(path string) string {
	return "file://" + path
}
