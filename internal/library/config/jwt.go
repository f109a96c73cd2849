package config

import "time"

// JWTConfig содержит настройки токенов доступа и хеширования паролей.
type JWTConfig struct {
	SecretKey      string        `yaml:"secret_key" env:"LIBRARY_JWT_SECRET_KEY" env-default:"change-me-in-production"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"LIBRARY_JWT_ACCESS_TOKEN_TTL" env-default:"24h"`
	BCryptCost     int           `yaml:"bcrypt_cost" env:"LIBRARY_JWT_BCRYPT_COST" env-default:"10"`
}
