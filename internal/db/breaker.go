package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"kwtaxonomy/internal/models"
)

// RecordFetcher is the storage collaborator the grouping endpoints read from.
type RecordFetcher interface {
	FetchKeywordRecords(ctx context.Context, projectID uuid.UUID) ([]models.KeywordRecord, error)
	ProjectVersion(ctx context.Context, projectID uuid.UUID) (time.Time, error)
}

// BreakerSettings configures GuardedSource.
type BreakerSettings struct {
	MaxFailures int           // Consecutive failures before the breaker opens
	Timeout     time.Duration // Time spent open before a trial request
}

// GuardedSource wraps a RecordFetcher in a circuit breaker. While the breaker is
// open, fetches fail fast with ErrUnavailable instead of waiting on the database.
type GuardedSource struct {
	fetcher RecordFetcher
	cb      *gobreaker.CircuitBreaker
}

// NewGuardedSource creates a breaker-protected fetcher.
func NewGuardedSource(fetcher RecordFetcher, s BreakerSettings) *GuardedSource {
	maxFailures := uint32(5)
	if s.MaxFailures > 0 {
		maxFailures = uint32(s.MaxFailures)
	}

	return &GuardedSource{
		fetcher: fetcher,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "keyword-store",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     s.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state changed")
			},
		}),
	}
}

// FetchKeywordRecords fetches through the breaker.
func (g *GuardedSource) FetchKeywordRecords(ctx context.Context, projectID uuid.UUID) ([]models.KeywordRecord, error) {
	return guard(ctx, g.cb, func() ([]models.KeywordRecord, error) {
		return g.fetcher.FetchKeywordRecords(ctx, projectID)
	})
}

// ProjectVersion reads the project's version through the breaker.
func (g *GuardedSource) ProjectVersion(ctx context.Context, projectID uuid.UUID) (time.Time, error) {
	return guard(ctx, g.cb, func() (time.Time, error) {
		return g.fetcher.ProjectVersion(ctx, projectID)
	})
}

// guard runs fn through cb. Unknown projects and cancelled requests do not
// count as storage failures.
func guard[T any](ctx context.Context, cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var (
		zero      T
		callerErr error
	)

	out, err := cb.Execute(func() (interface{}, error) {
		v, err := fn()
		if err != nil {
			if errors.Is(err, ErrProjectNotFound) || ctx.Err() != nil {
				callerErr = err
				return nil, nil
			}
			return nil, err
		}
		return v, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err != nil {
		return zero, err
	}
	if callerErr != nil {
		return zero, callerErr
	}
	return out.(T), nil
}

// State reports the breaker state ("closed", "half-open" or "open").
func (g *GuardedSource) State() string {
	return g.cb.State().String()
}
