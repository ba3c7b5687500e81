package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"fleet-sim-service/internal/domain"
)

// Initialize the Postgres schema used by the service.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDriversQuery := `
	CREATE TABLE IF NOT EXISTS drivers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		past_seven_day_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active'
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		traffic_level TEXT NOT NULL,
		base_time_minutes DOUBLE PRECISION NOT NULL
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		value_rs DOUBLE PRECISION NOT NULL DEFAULT 0,
		assigned_route TEXT NOT NULL REFERENCES routes(route_id),
		status TEXT NOT NULL DEFAULT 'pending'
	);
	`

	createResultsQuery := `
	CREATE TABLE IF NOT EXISTS simulation_results (
		id TEXT PRIMARY KEY,
		simulation_parameters JSONB NOT NULL,
		results JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createOrderStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
	`

	createResultsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_simulation_results_created_at
	ON simulation_results(created_at DESC);
	`

	statements := []string{
		createDriversQuery,
		createRoutesQuery,
		createOrdersQuery,
		createResultsQuery,
		createOrderStatusIndexQuery,
		createResultsIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// FleetSeed is the on-disk seed file shape.
type FleetSeed struct {
	Drivers []*domain.Driver `json:"drivers"`
	Routes  []*domain.Route  `json:"routes"`
	Orders  []*domain.Order  `json:"orders"`
}

// Populate the database with fleet data from a JSON file. Existing
// rows with the same ids are overwritten.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed fleet: read %q: %w", jsonPath, err)
	}

	var seed FleetSeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed fleet: parse json: %w", err)
	}

	for i, d := range seed.Drivers {
		if strings.TrimSpace(d.ID) == "" {
			return fmt.Errorf("seed fleet: driver at index %d: id cannot be empty", i+1)
		}
	}
	for i, r := range seed.Routes {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("seed fleet: route at index %d: route_id cannot be empty", i+1)
		}
		if r.DistanceKM <= 0 || r.BaseTimeMinutes <= 0 {
			return fmt.Errorf("seed fleet: route %q: distance_km and base_time_minutes must be positive", r.ID)
		}
	}
	for i, o := range seed.Orders {
		if strings.TrimSpace(o.ID) == "" {
			return fmt.Errorf("seed fleet: order at index %d: id cannot be empty", i+1)
		}
		if strings.TrimSpace(o.AssignedRoute) == "" {
			return fmt.Errorf("seed fleet: order %q: assigned_route cannot be empty", o.ID)
		}
	}

	return UpsertFleet(db, seed.Drivers, seed.Routes, seed.Orders)
}

// UpsertFleet writes drivers, routes and orders in one transaction.
func UpsertFleet(db *sql.DB, drivers []*domain.Driver, routes []*domain.Route, orders []*domain.Order) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("upsert fleet: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	driverQuery := `
	INSERT INTO drivers (id, name, past_seven_day_hours, status)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		past_seven_day_hours = EXCLUDED.past_seven_day_hours,
		status = EXCLUDED.status;
	`
	for _, d := range drivers {
		if _, err := tx.Exec(driverQuery, d.ID, d.Name, d.PastSevenDayHours, d.Status); err != nil {
			return fmt.Errorf("upsert fleet: insert driver %q: %w", d.ID, err)
		}
	}

	routeQuery := `
	INSERT INTO routes (route_id, name, distance_km, traffic_level, base_time_minutes)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (route_id) DO UPDATE SET
		name = EXCLUDED.name,
		distance_km = EXCLUDED.distance_km,
		traffic_level = EXCLUDED.traffic_level,
		base_time_minutes = EXCLUDED.base_time_minutes;
	`
	for _, r := range routes {
		if _, err := tx.Exec(routeQuery, r.ID, r.Name, r.DistanceKM, r.TrafficLevel, r.BaseTimeMinutes); err != nil {
			return fmt.Errorf("upsert fleet: insert route %q: %w", r.ID, err)
		}
	}

	orderQuery := `
	INSERT INTO orders (id, value_rs, assigned_route, status)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET
		value_rs = EXCLUDED.value_rs,
		assigned_route = EXCLUDED.assigned_route,
		status = EXCLUDED.status;
	`
	for _, o := range orders {
		if _, err := tx.Exec(orderQuery, o.ID, o.ValueRs, o.AssignedRoute, o.Status); err != nil {
			return fmt.Errorf("upsert fleet: insert order %q: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert fleet: commit tx: %w", err)
	}

	return nil
}
