package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fleet-sim-service/internal/domain"
	"fleet-sim-service/internal/platform/obs"
	"fleet-sim-service/internal/ports"

	"github.com/lucsky/cuid"
)

// Postgres-backed implementation of the SimulationStore port.
// Parameters and results are stored as JSONB, mirroring the API
// contract field for field.
type PostgresSimulationStore struct{ DB *sql.DB }

func NewPostgresSimulationStore(db *sql.DB) *PostgresSimulationStore {
	return &PostgresSimulationStore{DB: db}
}

// Save persists a completed run and fills in its generated ID.
func (p *PostgresSimulationStore) Save(ctx context.Context, res *domain.SimulationResult) (err error) {
	defer obs.Time(ctx, "simulations.Save")(&err)

	if p.DB == nil {
		return errors.New("simulation store: DB is nil")
	}

	params, err := json.Marshal(res.Parameters)
	if err != nil {
		return fmt.Errorf("save simulation: marshal parameters: %w", err)
	}
	results, err := json.Marshal(res.Results)
	if err != nil {
		return fmt.Errorf("save simulation: marshal results: %w", err)
	}

	if res.ID == "" {
		res.ID = cuid.New()
	}

	query := `
	INSERT INTO simulation_results (id, simulation_parameters, results, created_at)
	VALUES ($1, $2, $3, $4);
	`
	if _, err := p.DB.ExecContext(ctx, query, res.ID, params, results, res.CreatedAt); err != nil {
		return fmt.Errorf("save simulation: insert id=%s: %w", res.ID, err)
	}

	return nil
}

// List returns all stored runs, newest first.
func (p *PostgresSimulationStore) List(ctx context.Context) (_ []*domain.SimulationResult, err error) {
	defer obs.Time(ctx, "simulations.List")(&err)

	if p.DB == nil {
		return nil, errors.New("simulation store: DB is nil")
	}

	query := `
	SELECT id, simulation_parameters, results, created_at
	FROM simulation_results
	ORDER BY created_at DESC;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list simulations: query: %w", err)
	}
	defer rows.Close()

	list := make([]*domain.SimulationResult, 0, 32)
	for rows.Next() {
		res := &domain.SimulationResult{}
		var params, results []byte
		if err := rows.Scan(&res.ID, &params, &results, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("list simulations: scan row: %w", err)
		}
		if err := json.Unmarshal(params, &res.Parameters); err != nil {
			return nil, fmt.Errorf("list simulations: decode parameters id=%s: %w", res.ID, err)
		}
		if err := json.Unmarshal(results, &res.Results); err != nil {
			return nil, fmt.Errorf("list simulations: decode results id=%s: %w", res.ID, err)
		}
		list = append(list, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list simulations: row iteration: %w", err)
	}

	return list, nil
}

// Delete removes one stored run by id.
func (p *PostgresSimulationStore) Delete(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "simulations.Delete")(&err)

	if p.DB == nil {
		return errors.New("simulation store: DB is nil")
	}

	result, err := p.DB.ExecContext(ctx, `DELETE FROM simulation_results WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete simulation: id=%s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete simulation: rows affected: %w", err)
	}
	if affected == 0 {
		return ports.ErrNotFound
	}

	return nil
}
