package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rssched/rollingstock-solver/config"
)

// schema is applied on every New call (CREATE TABLE IF NOT EXISTS is
// idempotent) rather than through a separate migration tool — the
// teacher's SQL migrations live outside its Go sources, so there is
// nothing in-pack to ground an external migration runner on.
const schema = `
CREATE TABLE IF NOT EXISTS instances (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	raw_json   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS solutions (
	id              BIGSERIAL PRIMARY KEY,
	instance_id     BIGINT NOT NULL REFERENCES instances(id) ON DELETE CASCADE,
	export_json     JSONB NOT NULL,
	objective_value DOUBLE PRECISION NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store persists instances and solved schedules in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a connection pool to PostgreSQL, verifies connectivity,
// and ensures the schema exists.
//
// The pool is configured for moderate concurrency:
//   - MaxConns/MinConns: from cfg
//   - Health-check period: 30s
//   - Connectivity Ping on construction: 5s timeout
func New(ctx context.Context, cfg config.PostgresConfig) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("store: parse config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("store: create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping failed: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() { s.pool.Close() }

// HealthCheck pings the pool and returns nil if healthy.
func (s *Store) HealthCheck(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(pingCtx)
}

// SaveInstance stores the raw JSON of an ingested instance and returns
// its assigned id.
func (s *Store) SaveInstance(ctx context.Context, name string, rawJSON []byte) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO instances (name, raw_json) VALUES ($1, $2) RETURNING id`,
		name, rawJSON,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: save instance: %w", err)
	}
	return id, nil
}

// LoadInstance fetches a previously stored instance's raw JSON by id.
func (s *Store) LoadInstance(ctx context.Context, id int64) ([]byte, error) {
	var rawJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT raw_json FROM instances WHERE id = $1`, id,
	).Scan(&rawJSON)
	if err != nil {
		return nil, fmt.Errorf("store: load instance %d: %w", id, err)
	}
	return rawJSON, nil
}

// SaveSolution stores a solved schedule's exported JSON alongside its
// first-phase objective value, linked to the instance it solves.
func (s *Store) SaveSolution(ctx context.Context, instanceID int64, exportJSON []byte, objectiveValue float64) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO solutions (instance_id, export_json, objective_value)
		 VALUES ($1, $2, $3) RETURNING id`,
		instanceID, exportJSON, objectiveValue,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: save solution: %w", err)
	}
	return id, nil
}

// SolutionRecord is one row of a solved schedule previously stored
// against an instance.
type SolutionRecord struct {
	ID             int64
	ExportJSON     []byte
	ObjectiveValue float64
	CreatedAt      time.Time
}

// ListSolutions returns every solution stored for instanceID, most
// recent first.
func (s *Store) ListSolutions(ctx context.Context, instanceID int64) ([]SolutionRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, export_json, objective_value, created_at
		 FROM solutions WHERE instance_id = $1 ORDER BY created_at DESC`,
		instanceID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list solutions for instance %d: %w", instanceID, err)
	}
	defer rows.Close()

	var out []SolutionRecord
	for rows.Next() {
		var rec SolutionRecord
		if err := rows.Scan(&rec.ID, &rec.ExportJSON, &rec.ObjectiveValue, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan solution row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list solutions for instance %d: %w", instanceID, err)
	}
	return out, nil
}
