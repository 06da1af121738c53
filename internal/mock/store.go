// Package mock provides in-process stand-ins for the real services, backed
// by shared fixture collections and artificial latency, for offline and
// demo operation. The mocks implement the identical operation contracts;
// lookup misses are the only errors they produce, and the randomness in
// deploy/invoke is confined to this layer.
package mock

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/skyfn/skyfn-console/internal/domain"
)

// Store holds the shared fixture collections for the lifetime of the
// process. Mutations are visible to every mock service immediately; nothing
// persists across restarts. Safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	users      []domain.User
	workspaces []domain.Workspace
	functions  []domain.FunctionDetail
	jobs       []domain.Job

	latencyScale      float64
	deploySuccessRate float64
	invokeSuccessRate float64
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLatencyScale scales every artificial delay. 0 disables delays, which
// tests use to run the mock contracts deterministically fast.
func WithLatencyScale(scale float64) StoreOption {
	return func(s *Store) { s.latencyScale = scale }
}

// WithDeploySuccessRate overrides the ~90% deploy success probability.
// 1 forces success, 0 forces failure.
func WithDeploySuccessRate(rate float64) StoreOption {
	return func(s *Store) { s.deploySuccessRate = rate }
}

// WithInvokeSuccessRate overrides the invoke success probability
func WithInvokeSuccessRate(rate float64) StoreOption {
	return func(s *Store) { s.invokeSuccessRate = rate }
}

// NewStore creates a Store seeded with the demo fixtures
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		latencyScale:      1,
		deploySuccessRate: 0.9,
		invokeSuccessRate: 0.9,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	return s
}

// delay simulates network latency so loading states can be exercised. It
// returns early when the context is cancelled.
func (s *Store) delay(ctx context.Context, d time.Duration) {
	d = time.Duration(float64(d) * s.latencyScale)
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (s *Store) chance(rate float64) bool {
	if rate >= 1 {
		return true
	}
	if rate <= 0 {
		return false
	}
	return rand.Float64() < rate
}
