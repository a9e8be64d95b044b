package discogs

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/exp/slog"

	"vinylscan/internal/domain/lookup"
	"vinylscan/internal/infrastructure/metrics"
)

const breakerName = "discogs-api"

// Breaker guards a Searcher with a circuit breaker. A missing match counts as
// success; caller cancellations do not count against the provider.
type Breaker struct {
	next lookup.Searcher
	cb   *gobreaker.CircuitBreaker[*lookup.RawMatch]
	log  *slog.Logger
}

type BreakerSettings struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	MinRequests uint32
	FailureRate float64
}

// DefaultBreakerSettings opens after 60% failures over at least 10 requests and
// probes again after a minute.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		MinRequests: 10,
		FailureRate: 0.6,
	}
}

func NewBreaker(next lookup.Searcher, st BreakerSettings, log *slog.Logger) *Breaker {
	b := &Breaker{
		next: next,
		log:  log.With(slog.String("component", "discogs_breaker")),
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	b.cb = gobreaker.NewCircuitBreaker[*lookup.RawMatch](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: st.MaxRequests,
		Interval:    st.Interval,
		Timeout:     st.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < st.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= st.FailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.log.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return b
}

func (b *Breaker) Search(ctx context.Context, barcode string) (*lookup.RawMatch, error) {
	return b.cb.Execute(func() (*lookup.RawMatch, error) {
		return b.next.Search(ctx, barcode)
	})
}

// State reports the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
