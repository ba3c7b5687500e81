package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleet-sim-service/internal/domain"
	"fleet-sim-service/internal/platform/obs"
)

// Postgres-backed implementation of the FleetRepository port.
type PostgresFleetRepository struct{ DB *sql.DB }

func NewPostgresFleetRepository(db *sql.DB) *PostgresFleetRepository {
	return &PostgresFleetRepository{DB: db}
}

// Drivers currently marked active, in roster order.
func (p *PostgresFleetRepository) ActiveDrivers(ctx context.Context) (_ []*domain.Driver, err error) {
	defer obs.Time(ctx, "fleet.ActiveDrivers")(&err)

	if p.DB == nil {
		return nil, errors.New("fleet repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		past_seven_day_hours,
		status
	FROM drivers
	WHERE status = $1
	ORDER BY id;
	`
	rows, err := p.DB.QueryContext(ctx, query, domain.DriverActive)
	if err != nil {
		return nil, fmt.Errorf("active drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0, 64)
	for rows.Next() {
		d := &domain.Driver{}
		if err := rows.Scan(&d.ID, &d.Name, &d.PastSevenDayHours, &d.Status); err != nil {
			return nil, fmt.Errorf("active drivers: scan row: %w", err)
		}
		drivers = append(drivers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("active drivers: row iteration: %w", err)
	}

	return drivers, nil
}

// Every known route, in stable id order. Route order matters: it
// drives the round-robin assignment downstream.
func (p *PostgresFleetRepository) AllRoutes(ctx context.Context) (_ []*domain.Route, err error) {
	defer obs.Time(ctx, "fleet.AllRoutes")(&err)

	if p.DB == nil {
		return nil, errors.New("fleet repository: DB is nil")
	}

	query := `
	SELECT
		route_id,
		name,
		distance_km,
		traffic_level,
		base_time_minutes
	FROM routes
	ORDER BY route_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("all routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]*domain.Route, 0, 16)
	for rows.Next() {
		r := &domain.Route{}
		if err := rows.Scan(&r.ID, &r.Name, &r.DistanceKM, &r.TrafficLevel, &r.BaseTimeMinutes); err != nil {
			return nil, fmt.Errorf("all routes: scan row: %w", err)
		}
		routes = append(routes, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("all routes: row iteration: %w", err)
	}

	return routes, nil
}

// Orders still eligible for delivery (pending or in-transit), in
// stable id order.
func (p *PostgresFleetRepository) PendingOrders(ctx context.Context) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, "fleet.PendingOrders")(&err)

	if p.DB == nil {
		return nil, errors.New("fleet repository: DB is nil")
	}

	query := `
	SELECT
		id,
		value_rs,
		assigned_route,
		status
	FROM orders
	WHERE status = $1 OR status = $2
	ORDER BY id;
	`
	rows, err := p.DB.QueryContext(ctx, query, domain.OrderPending, domain.OrderInTransit)
	if err != nil {
		return nil, fmt.Errorf("pending orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 128)
	for rows.Next() {
		o := &domain.Order{}
		if err := rows.Scan(&o.ID, &o.ValueRs, &o.AssignedRoute, &o.Status); err != nil {
			return nil, fmt.Errorf("pending orders: scan row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pending orders: row iteration: %w", err)
	}

	return orders, nil
}
