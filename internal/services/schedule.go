package services

import (
	"slices"
	"strings"

	"fleet-sim-service/internal/config"
	"fleet-sim-service/internal/domain"
)

// SelectDrivers picks count drivers, favouring those with the fewest
// hours over the trailing week, and seeds their per-run state. The
// caller guarantees count <= len(drivers).
func SelectDrivers(drivers []*domain.Driver, count int, rules *config.Rules) []*domain.DriverState {
	sorted := slices.Clone(drivers)
	slices.SortFunc(sorted, func(a, b *domain.Driver) int {
		if a.PastSevenDayHours < b.PastSevenDayHours {
			return -1
		}
		if a.PastSevenDayHours > b.PastSevenDayHours {
			return 1
		}
		// Tie-breaker ensures deterministic selection for equal workloads.
		return strings.Compare(a.ID, b.ID)
	})

	states := make([]*domain.DriverState, 0, count)
	for _, d := range sorted[:count] {
		states = append(states, &domain.DriverState{
			ID:         d.ID,
			Name:       d.Name,
			IsFatigued: d.PastSevenDayHours > rules.FatigueThresholdHours,
		})
	}
	return states
}

// GroupOrdersByRoute partitions eligible orders under their assigned
// route id, preserving collection order within each route.
func GroupOrdersByRoute(orders []*domain.Order) map[string][]*domain.Order {
	grouped := make(map[string][]*domain.Order, len(orders))
	for _, o := range orders {
		grouped[o.AssignedRoute] = append(grouped[o.AssignedRoute], o)
	}
	return grouped
}

// RunSchedule walks every selected driver through its round-robin
// share of the routes (route i goes to driver i mod len(states)) and
// produces one outcome per order delivered within the driver's hour
// budget. Orders on unassigned routes, or arriving after a budget is
// exhausted, produce no outcome.
func RunSchedule(
	req domain.SimulationRequest,
	states []*domain.DriverState,
	routes []*domain.Route,
	ordersByRoute map[string][]*domain.Order,
	rules *config.Rules,
) []domain.DeliveryOutcome {
	outcomes := make([]domain.DeliveryOutcome, 0, len(ordersByRoute))

	for i, driver := range states {
		for ri, route := range routes {
			if ri%len(states) != i {
				continue
			}

			for _, order := range ordersByRoute[route.ID] {
				if driver.HoursWorked >= req.MaxHoursPerDriver {
					continue
				}

				out := EvaluateDelivery(order, route, driver, rules)
				outcomes = append(outcomes, out)
				driver.RecordDelivery(out.ActualDeliveryTime, rules.FatigueTriggerHours)
			}
		}
	}

	return outcomes
}
