// Package cache хранит профили читателей в Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/services"
	"libraryhub/internal/library/resilience"
	"libraryhub/pkg/logger"
)

const (
	LogMethodGet    = "ProfileCache.Get"
	LogMethodSet    = "ProfileCache.Set"
	LogMethodDelete = "ProfileCache.Delete"

	ErrorFailedToGet    = "failed to get profile from redis"
	ErrorFailedToSet    = "failed to set profile in redis"
	ErrorFailedToDelete = "failed to delete profile from redis"
	ErrorFailedToDecode = "failed to decode cached profile"

	keyPrefix  = "profile:"
	DefaultTTL = 10 * time.Minute
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// profile кешируемая часть пользователя. Хеш пароля в кеш не попадает.
type profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileCache реализует services.ProfileCache. Сбои Redis размыкают Circuit Breaker,
// и запросы идут в базу без ожидания таймаутов.
type ProfileCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
}

var _ services.ProfileCache = (*ProfileCache)(nil)

func NewProfileCache(client *redis.Client, ttl time.Duration, breaker resilience.CircuitBreakerConfig) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	breaker.IsFailure = func(err error) bool {
		return err != nil && !errors.Is(err, redis.Nil)
	}
	return &ProfileCache{
		client:  client,
		ttl:     ttl,
		breaker: resilience.NewCircuitBreaker("redis-profiles", breaker),
	}
}

func key(userID string) string {
	return keyPrefix + userID
}

// Get возвращает services.ErrCacheMiss, если профиля нет.
func (c *ProfileCache) Get(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("user_id", userID))

	var raw []byte
	err := c.breaker.Execute(ctx, func() error {
		var err error
		raw, err = c.client.Get(ctx, key(userID)).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, services.ErrCacheMiss
	}
	if err != nil {
		log.Debug(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var p profile
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, services.ErrCacheMiss
	}
	return &entities.User{ID: p.ID, Name: p.Name, Email: p.Email, CreatedAt: p.CreatedAt}, nil
}

func (c *ProfileCache) Set(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("user_id", user.ID))

	raw, err := json.Marshal(profile{ID: user.ID, Name: user.Name, Email: user.Email, CreatedAt: user.CreatedAt})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	err = c.breaker.Execute(ctx, func() error {
		return c.client.Set(ctx, key(user.ID), raw, c.ttl).Err()
	})
	if err != nil {
		log.Debug(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Delete удаляет профиль. Удаление выполняется и при разомкнутом Circuit Breaker.
func (c *ProfileCache) Delete(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.String("user_id", userID))

	err := c.client.Del(ctx, key(userID)).Err()
	c.breaker.RecordResult(ctx, err)
	if err != nil {
		log.Warn(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}
