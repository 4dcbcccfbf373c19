package ports

import "context"

// HealthChecker checks backing store health.
type HealthChecker interface {
	// Ping verifies connectivity. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "file", "redis").
	Name() string
}
