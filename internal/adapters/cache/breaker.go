package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"notepad/internal/config"
	"notepad/internal/ports/cache"
	"notepad/pkg/logger"
)

// CircuitState представляет состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	// StateClosed - запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen - запросы отклоняются без обращения к Redis.
	StateOpen
	// StateHalfOpen - пробные запросы.
	StateHalfOpen
)

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitTrip        = "circuit breaker tripped"
	LogCircuitReset       = "circuit breaker reset"
)

// ErrCircuitOpen возвращается, пока Circuit Breaker открыт.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker отсекает обращения к недоступному Redis.
type CircuitBreaker struct {
	name string
	cfg  config.BreakerConfig

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewCircuitBreaker создает Circuit Breaker в закрытом состоянии.
func NewCircuitBreaker(name string, cfg config.BreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:            name,
		cfg:             cfg,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
}

// Execute выполняет fn, если Circuit Breaker пропускает запрос.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.allow(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.record(ctx, err)
	return err
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) allow(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if time.Since(cb.lastStateChange) <= cb.cfg.Cooldown {
			return false
		}
		cb.setState(ctx, StateHalfOpen)
		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) record(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	// Отмена запроса клиентом не говорит о состоянии Redis.
	if errors.Is(err, context.Canceled) {
		return
	}

	if err != nil {
		cb.successes = 0
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.cfg.ErrorThreshold {
				cb.trip(ctx)
			}
		case StateHalfOpen:
			cb.trip(ctx)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.SuccessThreshold {
			logger.Log(ctx).Info(ctx, LogCircuitReset, zap.String("circuit_breaker", cb.name))
			cb.failures = 0
			cb.successes = 0
			cb.setState(ctx, StateClosed)
		}
	}
}

func (cb *CircuitBreaker) trip(ctx context.Context) {
	logger.Log(ctx).Warn(ctx, LogCircuitTrip,
		zap.String("circuit_breaker", cb.name),
		zap.Int("failures", cb.failures))
	cb.successes = 0
	cb.setState(ctx, StateOpen)
}

func (cb *CircuitBreaker) setState(ctx context.Context, state CircuitState) {
	cb.state = state
	cb.lastStateChange = time.Now()
	logger.Log(ctx).Info(ctx, LogCircuitStateChange,
		zap.String("circuit_breaker", cb.name),
		zap.Int("new_state", int(state)))
}

// BreakerCache пропускает обращения к кэшу через CircuitBreaker.
type BreakerCache struct {
	next    cache.Cache
	breaker *CircuitBreaker
}

// NewBreakerCache оборачивает next. Ошибки кэша по-прежнему возвращаются вызывающему.
func NewBreakerCache(next cache.Cache, breaker *CircuitBreaker) *BreakerCache {
	return &BreakerCache{next: next, breaker: breaker}
}

func (c *BreakerCache) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var count int64
	err := c.breaker.Execute(ctx, func() error {
		var err error
		count, err = c.next.Increment(ctx, key, ttl)
		return err
	})
	return count, err
}

func (c *BreakerCache) Delete(ctx context.Context, key string) error {
	return c.breaker.Execute(ctx, func() error {
		return c.next.Delete(ctx, key)
	})
}

func (c *BreakerCache) Close() error {
	return c.next.Close()
}
