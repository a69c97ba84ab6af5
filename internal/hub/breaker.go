// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package hub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/tourism-pipeline/internal/logging"
	"github.com/tomtom215/tourism-pipeline/internal/metrics"
)

// BreakerClient wraps an API with a circuit breaker. The breaker opens after
// a run of consecutive transport or server failures; 4xx responses count as
// successes because they say nothing about the health of the hub.
type BreakerClient struct {
	api  API
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// BreakerSettings configures NewBreakerClient.
type BreakerSettings struct {
	Name                string
	ConsecutiveFailures uint32        // failures before the circuit opens
	OpenTimeout         time.Duration // time in open state before a probe
}

// NewBreakerClient wraps api with a circuit breaker.
func NewBreakerClient(api API, s BreakerSettings) *BreakerClient {
	if s.Name == "" {
		s.Name = "hub-api"
	}
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 3
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= s.ConsecutiveFailures
			if shouldTrip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsClientError(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return &BreakerClient{api: api, cb: cb, name: s.Name}
}

// State returns the current breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// execute runs fn under the breaker and records the outcome.
func (b *BreakerClient) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	}
	return result, err
}

// castResult type-asserts a breaker result.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// RepoInfo fetches repository metadata with circuit breaker protection.
func (b *BreakerClient) RepoInfo(ctx context.Context, ref RepoRef) (*RepoInfo, error) {
	return castResult[*RepoInfo](b.execute(func() (any, error) {
		return b.api.RepoInfo(ctx, ref)
	}))
}

// CreateRepo creates a repository with circuit breaker protection.
func (b *BreakerClient) CreateRepo(ctx context.Context, ref RepoRef, private bool) (string, error) {
	return castResult[string](b.execute(func() (any, error) {
		return b.api.CreateRepo(ctx, ref, private)
	}))
}

// Commit creates a commit with circuit breaker protection.
func (b *BreakerClient) Commit(ctx context.Context, ref RepoRef, req *CommitRequest) (*CommitInfo, error) {
	return castResult[*CommitInfo](b.execute(func() (any, error) {
		return b.api.Commit(ctx, ref, req)
	}))
}

// Open downloads a file with circuit breaker protection.
func (b *BreakerClient) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	return castResult[io.ReadCloser](b.execute(func() (any, error) {
		return b.api.Open(ctx, uri)
	}))
}
