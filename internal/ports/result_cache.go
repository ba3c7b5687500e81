package ports

import (
	"context"

	"fleet-sim-service/internal/domain"
)

// Port: a cache for the most recent simulation result, so the
// dashboard can show it without hitting the store.
type ResultCache interface {
	SetLatest(ctx context.Context, res *domain.SimulationResult) error
	// Latest returns (nil, nil) on a cache miss.
	Latest(ctx context.Context) (*domain.SimulationResult, error)
}
