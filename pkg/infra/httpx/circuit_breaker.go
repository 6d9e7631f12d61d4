package httpx

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// ErrBreakerOpen reports that the breaker rejected the call without
// reaching upstream.
var ErrBreakerOpen = errors.New("circuit breaker open")

type CircuitBreaker interface {
	Execute(fn func() error) error
}

type breakerWrapper struct {
	breaker *gobreaker.CircuitBreaker
}

func NewCircuitBreaker(name string, cooldown time.Duration, maxFailures uint32) CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
	return &breakerWrapper{
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (g *breakerWrapper) Execute(fn func() error) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrBreakerOpen
	}
	return err
}
