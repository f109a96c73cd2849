package logger

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// NewRequestIDContext сохраняет идентификатор запроса в контексте, генерируя его при пустом значении.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID извлекает идентификатор запроса.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

func GenerateRequestID() string {
	return uuid.NewString()
}
