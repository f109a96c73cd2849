package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"LIBRARY_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"LIBRARY_HTTP_PORT" env-default:"8000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"LIBRARY_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"LIBRARY_HTTP_WRITE_TIMEOUT" env-default:"30s"`
	BodyLimit    int           `yaml:"body_limit" env:"LIBRARY_HTTP_BODY_LIMIT" env-default:"1048576"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GRPCConfig адрес gRPC сервера проверки здоровья.
type GRPCConfig struct {
	Host string `yaml:"host" env:"LIBRARY_GRPC_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"LIBRARY_GRPC_PORT" env-default:"50051"`
}

func (c *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RateLimitConfig лимиты запросов с одного IP за окно.
type RateLimitConfig struct {
	Reads  int           `yaml:"reads" env:"LIBRARY_RATE_LIMIT_READS" env-default:"50"`
	Writes int           `yaml:"writes" env:"LIBRARY_RATE_LIMIT_WRITES" env-default:"20"`
	Login  int           `yaml:"login" env:"LIBRARY_RATE_LIMIT_LOGIN" env-default:"5"`
	Window time.Duration `yaml:"window" env:"LIBRARY_RATE_LIMIT_WINDOW" env-default:"1m"`
}
