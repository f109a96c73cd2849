package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/pkg/logger"
)

const (
	msgOperationRejected = "operation rejected"
	msgOperationFailed   = "operation failed"
)

// logFailure пишет ожидаемые ошибки домена на уровне debug, сбои инфраструктуры как error.
func logFailure(ctx context.Context, log *logger.Logger, err error) {
	if entities.IsDomain(err) {
		log.Debug(ctx, msgOperationRejected, zap.Error(err))
		return
	}
	log.Error(ctx, msgOperationFailed, zap.Error(err))
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
