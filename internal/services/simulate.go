package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fleet-sim-service/internal/config"
	"fleet-sim-service/internal/domain"
	"fleet-sim-service/internal/platform/obs"
	"fleet-sim-service/internal/ports"
)

// SimulationReport is the successful result of one run: the KPI
// aggregate plus run metadata.
type SimulationReport struct {
	KPIs     domain.KPIResult
	Metadata ReportMetadata
}

// ReportMetadata describes the snapshot a run was computed over.
// OrdersSkipped counts eligible orders that produced no outcome
// (unassigned route or exhausted driver budget).
type ReportMetadata struct {
	SimulationTimestamp time.Time
	DriversAvailable    int
	RoutesProcessed     int
	OrdersProcessed     int
	OrdersSkipped       int
}

// Simulate runs one delivery simulation against a snapshot of the
// fleet data. The three fetches are issued concurrently and joined
// before computation starts; the computation itself is a single
// deterministic pass with no retries and no partial results.
func Simulate(
	ctx context.Context,
	req domain.SimulationRequest,
	repo ports.FleetRepository,
	rules *config.Rules,
) (_ *SimulationReport, err error) {
	defer obs.Time(ctx, "services.Simulate")(&err)

	var (
		drivers []*domain.Driver
		routes  []*domain.Route
		orders  []*domain.Order
	)

	fetches := []struct {
		name string
		run  func() error
	}{
		{"active drivers", func() error {
			var e error
			drivers, e = repo.ActiveDrivers(ctx)
			return e
		}},
		{"routes", func() error {
			var e error
			routes, e = repo.AllRoutes(ctx)
			return e
		}},
		{"pending orders", func() error {
			var e error
			orders, e = repo.PendingOrders(ctx)
			return e
		}},
	}

	errs := make([]error, len(fetches))
	var wg sync.WaitGroup
	for i, f := range fetches {
		i, f := i, f
		wg.Add(1)
		go func() {
			defer wg.Done()
			if e := f.run(); e != nil {
				errs[i] = fmt.Errorf("simulate: fetch %s: %w", f.name, e)
			}
		}()
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}

	if len(drivers) < req.NumberOfDrivers {
		return nil, &SimulationError{
			Code:             CodeInsufficientDrivers,
			Message:          "insufficient active drivers available",
			Details:          fmt.Sprintf("Requested: %d, Available: %d", req.NumberOfDrivers, len(drivers)),
			AvailableDrivers: len(drivers),
			RequestedDrivers: req.NumberOfDrivers,
		}
	}
	if len(routes) == 0 {
		return nil, &SimulationError{
			Code:    CodeNoRoutes,
			Message: "no routes available for simulation",
			Details: "at least one route must exist to run a simulation",
		}
	}
	if len(orders) == 0 {
		return nil, &SimulationError{
			Code:    CodeNoOrders,
			Message: "no pending orders available for simulation",
			Details: "at least one pending or in-transit order must exist to run a simulation",
		}
	}

	states := SelectDrivers(drivers, req.NumberOfDrivers, rules)
	outcomes := RunSchedule(req, states, routes, GroupOrdersByRoute(orders), rules)
	kpis := AggregateKPIs(outcomes, states, req, orders)

	return &SimulationReport{
		KPIs: kpis,
		Metadata: ReportMetadata{
			SimulationTimestamp: time.Now().UTC(),
			DriversAvailable:    len(drivers),
			RoutesProcessed:     len(routes),
			OrdersProcessed:     len(orders),
			OrdersSkipped:       len(orders) - len(outcomes),
		},
	}, nil
}
