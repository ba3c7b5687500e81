// Package seed generates clearly labeled demo fleets for local and
// demo environments. It is reachable only through the explicit
// `dbtool demo` command and is never wired into the server, so demo
// data can not silently leak into production KPIs.
package seed

import (
	"fmt"
	"math/rand"

	"fleet-sim-service/internal/domain"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

// DemoFleet is a generated dataset of drivers, routes and orders.
type DemoFleet struct {
	Drivers []*domain.Driver
	Routes  []*domain.Route
	Orders  []*domain.Order
}

var trafficLevels = []string{domain.TrafficLow, domain.TrafficMedium, domain.TrafficHigh}

// GenerateDemoFleet builds a reproducible demo dataset. The same seed
// yields the same fleet. Driver names carry a "[demo]" suffix so the
// records are recognisable wherever they surface.
func GenerateDemoFleet(drivers, routes, orders int, randSeed int64) *DemoFleet {
	fake := faker.NewWithSeed(rand.NewSource(randSeed))
	fleet := &DemoFleet{
		Drivers: make([]*domain.Driver, 0, drivers),
		Routes:  make([]*domain.Route, 0, routes),
		Orders:  make([]*domain.Order, 0, orders),
	}

	for i := 0; i < drivers; i++ {
		status := domain.DriverActive
		// Keep a slice of the roster inactive so insufficient-driver
		// scenarios are reproducible against demo data.
		if i%5 == 4 {
			status = domain.DriverInactive
		}
		fleet.Drivers = append(fleet.Drivers, &domain.Driver{
			ID:                cuid.New(),
			Name:              fake.Person().Name() + " [demo]",
			PastSevenDayHours: fake.Float64(1, 0, 70),
			Status:            status,
		})
	}

	for i := 0; i < routes; i++ {
		fleet.Routes = append(fleet.Routes, &domain.Route{
			ID:              cuid.New(),
			Name:            fmt.Sprintf("%s route [demo]", fake.Address().StreetName()),
			DistanceKM:      fake.Float64(1, 2, 40),
			TrafficLevel:    trafficLevels[fake.IntBetween(0, len(trafficLevels)-1)],
			BaseTimeMinutes: float64(fake.IntBetween(10, 90)),
		})
	}

	for i := 0; i < orders; i++ {
		status := domain.OrderPending
		if i%4 == 3 {
			status = domain.OrderInTransit
		}
		route := fleet.Routes[fake.IntBetween(0, len(fleet.Routes)-1)]
		fleet.Orders = append(fleet.Orders, &domain.Order{
			ID:            cuid.New(),
			ValueRs:       fake.Float64(2, 100, 5000),
			AssignedRoute: route.ID,
			Status:        status,
		})
	}

	return fleet
}
