package config

import (
	"time"

	"libraryhub/pkg/logger"
)

// LoggingConfig представляет конфигурацию логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LIBRARY_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"LIBRARY_ENV" env-default:"production"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == string(logger.Development) {
		return logger.Development
	}
	return logger.Production
}

// ShutdownConfig таймаут корректного завершения в секундах.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"LIBRARY_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10"`
}

func (c *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// LibraryConfig правила выдачи и отчеты.
type LibraryConfig struct {
	Timezone   string `yaml:"timezone" env:"LIBRARY_TIMEZONE" env-default:"UTC"`
	ReportsDir string `yaml:"reports_dir" env:"LIBRARY_REPORTS_DIR" env-default:"reports"`
}
