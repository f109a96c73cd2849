// Package resilience защищает обращения к внешним хранилищам повторами и Circuit Breaker.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"libraryhub/pkg/logger"
)

// CircuitState состояние Circuit Breaker.
type CircuitState int

const (
	// StateClosed запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen запросы отклоняются до истечения Timeout.
	StateOpen
	// StateHalfOpen пропускаются пробные запросы.
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitTrip        = "circuit breaker tripped"
	LogCircuitReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, пока Circuit Breaker открыт.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold число подряд идущих сбоев до размыкания.
	ErrorThreshold int
	// Timeout время в открытом состоянии до пробных запросов.
	Timeout time.Duration
	// SuccessThreshold число успешных пробных запросов до замыкания.
	SuccessThreshold int
	// IsFailure решает, считается ли ошибка сбоем. По умолчанию любая ненулевая.
	IsFailure func(error) bool
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker безопасен для конкурентного использования.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	now    func() time.Time

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastStateChange time.Time
}

func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}
	cb := &CircuitBreaker{
		name:   name,
		config: config,
		now:    time.Now,
		state:  StateClosed,
	}
	cb.lastStateChange = cb.now()
	return cb
}

// Execute выполняет fn, если Circuit Breaker пропускает запрос.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.AllowRequest(ctx) {
		return ErrCircuitOpen
	}
	err := fn()
	cb.RecordResult(ctx, err)
	return err
}

// AllowRequest переводит открытый Circuit Breaker в полуоткрытый по истечении Timeout.
func (cb *CircuitBreaker) AllowRequest(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) >= cb.config.Timeout {
			cb.setState(ctx, StateHalfOpen)
			return true
		}
		logger.Log(ctx).Debug(ctx, LogCircuitReject, zap.String("circuit_breaker", cb.name))
		return false
	default:
		return false
	}
}

func (cb *CircuitBreaker) RecordResult(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.config.IsFailure(err) {
		cb.onFailure(ctx)
		return
	}
	cb.onSuccess(ctx)
}

func (cb *CircuitBreaker) onFailure(ctx context.Context) {
	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.ErrorThreshold {
			logger.Log(ctx).Warn(ctx, LogCircuitTrip,
				zap.String("circuit_breaker", cb.name),
				zap.Int("failures", cb.failures))
			cb.setState(ctx, StateOpen)
		}
	case StateHalfOpen:
		cb.setState(ctx, StateOpen)
	}
}

func (cb *CircuitBreaker) onSuccess(ctx context.Context) {
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.setState(ctx, StateClosed)
		}
	}
}

// setState вызывается под cb.mu.
func (cb *CircuitBreaker) setState(ctx context.Context, next CircuitState) {
	if cb.state == next {
		return
	}
	logger.Log(ctx).Info(ctx, LogCircuitStateChange,
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("from", cb.state),
		zap.Stringer("to", next))
	cb.state = next
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
