package routing

import (
	"context"
	"sync"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// MockEstimator is a scripted RouteEstimator for tests.
//
// Estimates are looked up by stop count; unscripted counts produce the
// deterministic fallback, matching the real client's behavior when the
// service is unreachable. Delay simulates a slow routing call so tests can
// exercise in-flight serialization.
type MockEstimator struct {
	mu      sync.Mutex
	ByCount map[int]ports.RouteEstimate
	Delay   time.Duration
	calls   int
}

func NewMockEstimator(byCount map[int]ports.RouteEstimate) *MockEstimator {
	return &MockEstimator{ByCount: byCount}
}

func (m *MockEstimator) Estimate(ctx context.Context, stops []*domain.Delivery) (ports.RouteEstimate, error) {
	m.mu.Lock()
	m.calls++
	est, ok := m.ByCount[len(stops)]
	delay := m.Delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
	}

	if !ok {
		return Fallback(len(stops)), nil
	}
	return est, nil
}

// Calls reports how many estimates were requested.
func (m *MockEstimator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
