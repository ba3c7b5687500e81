package ports

import (
	"context"
	"errors"

	"fleet-sim-service/internal/domain"
)

// Returned by stores when the referenced simulation result does not exist.
var ErrNotFound = errors.New("simulation result not found")

// Port: persistence for completed simulation runs (the history screen).
type SimulationStore interface {
	// Save persists a result and fills in its generated ID.
	Save(ctx context.Context, res *domain.SimulationResult) error
	// List returns all stored results, newest first.
	List(ctx context.Context) ([]*domain.SimulationResult, error)
	// Delete removes one result by id. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
