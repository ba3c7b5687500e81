package ports

import (
	"context"

	"fleet-sim-service/internal/domain"
)

// Port: downstream notification of completed simulation runs.
type EventPublisher interface {
	SimulationCompleted(ctx context.Context, res *domain.SimulationResult) error
}
