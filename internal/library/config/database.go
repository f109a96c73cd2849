package config

import (
	"fmt"
	"net/url"
	"time"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"LIBRARY_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"LIBRARY_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"LIBRARY_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"LIBRARY_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"LIBRARY_POSTGRES_DB" env-default:"library"`
	SSLMode         string        `yaml:"ssl_mode" env:"LIBRARY_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn         int32         `yaml:"min_conn" env:"LIBRARY_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int32         `yaml:"max_conn" env:"LIBRARY_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"LIBRARY_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"LIBRARY_POSTGRES_CONNECT_TIMEOUT" env-default:"5s"`
	MigrationsPath  string        `yaml:"migrations_path" env:"LIBRARY_POSTGRES_MIGRATIONS_PATH" env-default:"migrations/library"`
	TxMaxAttempts   int           `yaml:"tx_max_attempts" env:"LIBRARY_POSTGRES_TX_MAX_ATTEMPTS" env-default:"3"`
}

// GetDSN возвращает URL подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}
