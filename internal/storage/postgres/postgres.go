// Package postgres stores saves in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctclostio/MojaveAdventure/internal/config"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// savesTable is created by migrations/000001_create_saves.up.sql.
const savesTable = "saves"

// Pool is the save database: a pgx pool that has answered a ping.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the save database described by cfg.
//
// Precondition: cfg passes config validation.
// Postcondition: Returns a pool that answered a ping, or a persistence error
// with nothing left open.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, "parsing database config")
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, "creating connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, fmt.Sprintf("reaching %s:%d", cfg.Host, cfg.Port))
	}
	return &Pool{pool: pool}, nil
}

// Health pings the database, giving up after timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.pool.Ping(ctx); err != nil {
		return gameerr.Wrap(gameerr.KindPersistence, err, "save database unreachable")
	}
	return nil
}

// SchemaReady reports whether the saves table exists.
//
// Postcondition: Returns a persistence error naming cmd/migrate when the
// table is absent.
func (p *Pool) SchemaReady(ctx context.Context) error {
	var exists bool
	err := p.pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, savesTable).Scan(&exists)
	if err != nil {
		return gameerr.Wrap(gameerr.KindPersistence, err, "checking save schema")
	}
	if !exists {
		return gameerr.Newf(gameerr.KindPersistence, "table %q is missing; run cmd/migrate first", savesTable)
	}
	return nil
}

// Saves returns a SaveRepository on this pool.
func (p *Pool) Saves() *SaveRepository {
	return NewSaveRepository(p.pool)
}

// Close releases all connections.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgx pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
