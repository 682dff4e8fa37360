package lookups

import (
	"context"
	"errors"

	"github.com/sony/gobreaker/v2"

	"github.com/simonta/simonta-api/pkg/validator"
)

// Breaker guards a store with a circuit breaker. While the circuit is open
// every call fails immediately with validator.ErrLookupUnavailable.
type Breaker struct {
	next validator.Lookups
	cb   *gobreaker.CircuitBreaker[bool]
}

// NewBreaker wraps next. Caller cancellations and Schema errors do not count
// as store failures.
func NewBreaker(next validator.Lookups, st gobreaker.Settings) *Breaker {
	if st.IsSuccessful == nil {
		st.IsSuccessful = func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrUnknownEntity) ||
				errors.Is(err, ErrUnknownColumn)
		}
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker[bool](st)}
}

// State exposes the circuit state for health reporting.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Exists implements validator.Lookups.
func (b *Breaker) Exists(ctx context.Context, entity, column string, value any) (bool, error) {
	return b.run(func() (bool, error) {
		return b.next.Exists(ctx, entity, column, value)
	})
}

// ExistsExcluding implements validator.Lookups.
func (b *Breaker) ExistsExcluding(ctx context.Context, entity, column string, value any, excludeID int64) (bool, error) {
	return b.run(func() (bool, error) {
		return b.next.ExistsExcluding(ctx, entity, column, value, excludeID)
	})
}

func (b *Breaker) run(fn func() (bool, error)) (bool, error) {
	found, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false, errors.Join(validator.ErrLookupUnavailable, err)
	}
	return found, err
}

// Healthcheck fails while the circuit is open.
func (b *Breaker) Healthcheck() func(context.Context) error {
	return func(context.Context) error {
		if b.cb.State() == gobreaker.StateOpen {
			return errors.Join(validator.ErrLookupUnavailable, gobreaker.ErrOpenState)
		}
		return nil
	}
}
