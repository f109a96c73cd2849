package main

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"libraryhub/internal/library/adapters/cache"
	pgrepo "libraryhub/internal/library/adapters/postgres"
	"libraryhub/internal/library/adapters/report"
	"libraryhub/internal/library/adapters/services"
	"libraryhub/internal/library/app"
	"libraryhub/internal/library/config"
	"libraryhub/internal/library/resilience"
	svc "libraryhub/internal/library/ports/services"
	"libraryhub/pkg/db/postgres"
	"libraryhub/pkg/db/redis"
	"libraryhub/pkg/logger"
)

const (
	LogInitDatabase  = "initializing database"
	LogInitCache     = "initializing profile cache"
	LogCacheDisabled = "profile cache disabled"
	LogInitServices  = "initializing services"
	LogClosingRedis  = "closing Redis connection"

	ErrLoadTimezone      = "failed to load library timezone"
	ErrConnectDatabase   = "failed to connect to database"
	ErrCreateRedisClient = "failed to create Redis client"
)

// container собранные зависимости сервиса.
type container struct {
	cfg   *config.Config
	db    *postgres.Database
	redis *goredis.Client
	clock svc.Clock
	repos *pgrepo.RepositoryFactory

	users   *app.UserUseCase
	authors *app.AuthorUseCase
	books   *app.BookUseCase
	loans   *app.LoanUseCase
	auth    *app.AuthUseCase
	reports *app.ReportUseCase
}

func newContainer(ctx context.Context, cfg *config.Config) (*container, error) {
	log := logger.Log(ctx)

	clock, err := services.LoadClock(cfg.Library.Timezone)
	if err != nil {
		log.Error(ctx, ErrLoadTimezone, zap.String("timezone", cfg.Library.Timezone), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrLoadTimezone, err)
	}

	log.Info(ctx, LogInitDatabase)
	db, err := postgres.New(ctx, cfg.Postgres.GetDSN(), postgres.PoolOptions{
		MinConns:        cfg.Postgres.MinConn,
		MaxConns:        cfg.Postgres.MaxConn,
		MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
		ConnectTimeout:  cfg.Postgres.ConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConnectDatabase, err)
	}

	c := &container{cfg: cfg, db: db, clock: clock}

	var profiles svc.ProfileCache
	if cfg.Redis.Enabled {
		log.Info(ctx, LogInitCache, zap.String("address", cfg.Redis.GetAddress()))
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.Redis.GetAddress(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			c.Close(ctx)
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrCreateRedisClient, err)
		}
		c.redis = client
		profiles = cache.NewProfileCache(client, cfg.Redis.TTL, resilience.DefaultCircuitBreakerConfig())
	} else {
		log.Info(ctx, LogCacheDisabled)
	}

	log.Info(ctx, LogInitServices)
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.Postgres.TxMaxAttempts
	c.repos = pgrepo.NewRepositoryFactory(db.Pool(), retry)

	factory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.BCryptCost, clock)

	c.users = app.NewUserUseCase(c.repos, factory.PasswordService(), profiles, clock)
	c.authors = app.NewAuthorUseCase(c.repos)
	c.books = app.NewBookUseCase(c.repos)
	c.loans = app.NewLoanUseCase(c.repos, clock)
	c.auth = app.NewAuthUseCase(c.repos.Users(), c.users, factory.PasswordService(), factory.TokenService())
	c.reports = app.NewReportUseCase(c.repos, clock, report.All()...)
	return c, nil
}

// Close закрывает Redis и пул соединений.
func (c *container) Close(ctx context.Context) {
	if c.redis != nil {
		logger.Log(ctx).Info(ctx, LogClosingRedis)
		if err := c.redis.Close(); err != nil {
			logger.Log(ctx).Warn(ctx, LogClosingRedis, zap.Error(err))
		}
	}
	c.db.Close(ctx)
}

func (c *container) today() time.Time {
	return c.clock.Now()
}
