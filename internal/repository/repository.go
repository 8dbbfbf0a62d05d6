package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// Sink durably appends resolved addresses.
type Sink interface {
	Append(ctx context.Context, addr models.Address) error
}

// Store is a Sink that also owns its schema and connection.
type Store interface {
	Sink
	EnsureSchema(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close()
}

// Type names a storage backend.
type Type string

const (
	// TypeSQLite stores addresses in a local SQLite file.
	TypeSQLite Type = "sqlite"
	// TypePostgres stores addresses in a PostgreSQL database.
	TypePostgres Type = "postgres"
)

// Config selects and configures a storage backend.
type Config struct {
	Type       Type
	SQLitePath string
	Postgres   PostgresConfig
}

// PostgresConfig holds the connection details for a PostgreSQL database.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// NewStore opens the configured backend and makes sure the addresses table exists.
func NewStore(ctx context.Context, cfg Config, log *slog.Logger) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Type {
	case TypeSQLite:
		store, err = NewSQLite(ctx, cfg.SQLitePath, log)
	case TypePostgres:
		pg := cfg.Postgres
		var pool Database
		pool, err = NewDatabase(ctx, pg.Host, pg.Port, pg.User, pg.Password, pg.Name)
		if err == nil {
			store = NewPostgres(pool, log)
		}
	default:
		return nil, fmt.Errorf("unsupported sink type: %s", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	if err = store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return store, nil
}
