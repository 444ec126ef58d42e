package notify

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Breaker guards a notifier so an unreachable backend is skipped instead of retried on every event.
type Breaker struct {
	next Notifier
	cb   *gobreaker.CircuitBreaker[struct{}]
}

type BreakerSettings struct {
	Name string
	// MaxFailures consecutive failures open the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before letting a probe through.
	OpenTimeout time.Duration
}

func NewBreaker(next Notifier, s BreakerSettings) *Breaker {
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.OpenTimeout == 0 {
		s.OpenTimeout = 30 * time.Second
	}
	maxFailures := s.MaxFailures

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	})
	return &Breaker{next: next, cb: cb}
}

func (b *Breaker) Publish(ctx context.Context, e Event) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Publish(ctx, e)
	})
	return err
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *Breaker) Close() error {
	return b.next.Close()
}
