// Package config содержит конфигурацию сервиса libraryhub.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "libraryhub/pkg/config"
	"libraryhub/pkg/logger"
)

const (
	ServiceName = "libraryhub"

	LogConfigSummary = "library configuration"
	ErrInvalidConfig = "invalid configuration"
)

// Config полная конфигурация сервиса.
type Config struct {
	Postgres  PostgresConfig  `yaml:"postgres"`
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	JWT       JWTConfig       `yaml:"jwt"`
	Redis     RedisConfig     `yaml:"redis"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Library   LibraryConfig   `yaml:"library"`
}

// Load читает конфигурацию из окружения или LIBRARY_CONFIG_FILE.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, fmt.Errorf("loading %s config: %w", ServiceName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigSummary,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("timezone", cfg.Library.Timezone),
		zap.String("log_level", cfg.Logging.Level))

	return cfg, nil
}

// Validate проверяет значения, которые нельзя исправить значением по умолчанию.
func (c *Config) Validate() error {
	switch {
	case c.JWT.SecretKey == "":
		return fmt.Errorf("jwt secret key must be set")
	case c.JWT.AccessTokenTTL <= 0:
		return fmt.Errorf("jwt access token ttl must be positive")
	case c.HTTP.Port <= 0 || c.GRPC.Port <= 0:
		return fmt.Errorf("ports must be positive")
	case c.RateLimit.Reads <= 0 || c.RateLimit.Writes <= 0 || c.RateLimit.Login <= 0:
		return fmt.Errorf("rate limits must be positive")
	}
	return nil
}
