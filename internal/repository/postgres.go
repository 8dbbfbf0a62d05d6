package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the subset of *pgxpool.Pool used by Postgres.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Postgres appends addresses to the public.addresses table.
type Postgres struct {
	db  Database
	log *slog.Logger
}

// NewDatabase opens a connection pool and verifies it with a ping.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// NewPostgres creates a new Postgres sink with the provided Database.
func NewPostgres(db Database, log *slog.Logger) *Postgres {
	return &Postgres{db: db, log: log}
}

// EnsureSchema creates the addresses table when it does not exist yet.
// Coordinates are NUMERIC so the decimal text from the input is stored without rounding.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS public.addresses (
			id BIGSERIAL PRIMARY KEY,
			latitude NUMERIC NOT NULL,
			longitude NUMERIC NOT NULL,
			road TEXT NOT NULL,
			house_number TEXT NOT NULL,
			suburb TEXT NOT NULL,
			city TEXT NOT NULL,
			postcode TEXT NOT NULL,
			state TEXT NOT NULL,
			country TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := p.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create addresses table: %w", err)
	}

	return nil
}

// Append inserts a single address.
func (p *Postgres) Append(ctx context.Context, addr models.Address) error {
	query := `
		INSERT INTO public.addresses
			(latitude, longitude, road, house_number, suburb, city, postcode, state, country)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	if _, err := p.db.Exec(ctx, query, addr.Values()...); err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}

	p.log.DebugContext(ctx, "Address persisted", "latitude", addr.Latitude, "longitude", addr.Longitude)

	return nil
}

// Count returns the number of stored addresses.
func (p *Postgres) Count(ctx context.Context) (int, error) {
	var count int
	if err := p.db.QueryRow(ctx, `SELECT count(*) FROM public.addresses;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}

	return count, nil
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.db.Close()
}
