package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"libraryhub/pkg/logger"
)

const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrRevertMigrations        = "failed to revert migrations"
)

// Direction направление миграции.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MigrateDSN применяет миграции из migrationsPath (например file://migrations/library).
func MigrateDSN(ctx context.Context, dsn, migrationsPath string) error {
	return Migrate(ctx, dsn, migrationsPath, Up, 0)
}

// Migrate выполняет миграции в указанном направлении. steps > 0 ограничивает число шагов.
func Migrate(ctx context.Context, dsn, migrationsPath string, dir Direction, steps int) error {
	log := logger.Log(ctx).With(zap.String("path", migrationsPath), zap.String("direction", string(dir)))

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer m.Close()

	switch {
	case steps > 0 && dir == Down:
		err = m.Steps(-steps)
	case steps > 0:
		err = m.Steps(steps)
	case dir == Down:
		err = m.Down()
	default:
		err = m.Up()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		msg := ErrApplyMigrations
		if dir == Down {
			msg = ErrRevertMigrations
		}
		log.Error(ctx, msg, zap.Error(err))
		return fmt.Errorf("%s: %w", msg, err)
	}

	if dir == Down {
		log.Info(ctx, LogMigrationsReverted)
	} else {
		log.Info(ctx, LogMigrationsApplied)
	}
	return nil
}
