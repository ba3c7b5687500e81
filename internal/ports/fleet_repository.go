package ports

import (
	"context"

	"fleet-sim-service/internal/domain"
)

// Port: a boundary for fetching the fleet snapshot a simulation runs
// against. Implementations must not mutate stored data; each call
// returns an independent snapshot.
type FleetRepository interface {
	// Drivers currently marked active, in roster order.
	ActiveDrivers(ctx context.Context) ([]*domain.Driver, error)
	// Every known route, in stable id order.
	AllRoutes(ctx context.Context) ([]*domain.Route, error)
	// Orders still eligible for delivery (pending or in-transit).
	PendingOrders(ctx context.Context) ([]*domain.Order, error)
}
