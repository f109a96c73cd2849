// Package config загружает конфигурацию сервисов через cleanenv.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"libraryhub/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// FileEnv переменная окружения с путем к необязательному YAML/ENV файлу конфигурации.
const FileEnv = "LIBRARY_CONFIG_FILE"

// Load читает конфигурацию типа T. Если задан LIBRARY_CONFIG_FILE, значения берутся из файла
// и перекрываются переменными окружения, иначе только из окружения.
func Load[T any](ctx context.Context, serviceName string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	path := os.Getenv(FileEnv)
	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var cfg T
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
