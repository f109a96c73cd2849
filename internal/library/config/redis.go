package config

import (
	"fmt"
	"time"
)

// RedisConfig конфигурация кеша профилей. При Enabled=false кеш не используется.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled" env:"LIBRARY_REDIS_ENABLED" env-default:"false"`
	Host     string        `yaml:"host" env:"LIBRARY_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"LIBRARY_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"LIBRARY_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"LIBRARY_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"LIBRARY_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"LIBRARY_REDIS_TIMEOUT" env-default:"3s"`
	TTL      time.Duration `yaml:"ttl" env:"LIBRARY_REDIS_TTL" env-default:"10m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
