package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/meridian/internal/models"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// SQLite appends addresses to an addresses table in a local database file.
type SQLite struct {
	conn *sql.DB
	log  *slog.Logger
}

// NewSQLite opens (and creates if needed) the database file at path.
func NewSQLite(ctx context.Context, path string, log *slog.Logger) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Only the writer touches the sink, one connection is enough.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &SQLite{conn: conn, log: log}, nil
}

// EnsureSchema creates the addresses table when it does not exist yet.
func (s *SQLite) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS addresses (
			latitude TEXT NOT NULL,
			longitude TEXT NOT NULL,
			road TEXT NOT NULL,
			house_number TEXT NOT NULL,
			suburb TEXT NOT NULL,
			city TEXT NOT NULL,
			postcode TEXT NOT NULL,
			state TEXT NOT NULL,
			country TEXT NOT NULL
		);
	`

	if _, err := s.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create addresses table: %w", err)
	}

	return nil
}

// Append inserts a single address.
func (s *SQLite) Append(ctx context.Context, addr models.Address) error {
	query := `
		INSERT INTO addresses
			(latitude, longitude, road, house_number, suburb, city, postcode, state, country)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	if _, err := s.conn.ExecContext(ctx, query, addr.Values()...); err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}

	s.log.DebugContext(ctx, "Address persisted", "latitude", addr.Latitude, "longitude", addr.Longitude)

	return nil
}

// Count returns the number of stored addresses.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.conn.QueryRowContext(ctx, `SELECT count(*) FROM addresses;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}

	return count, nil
}

// Ping checks the database connection.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close closes the database.
func (s *SQLite) Close() {
	if err := s.conn.Close(); err != nil {
		s.log.Error("failed to close sqlite database", "error", err)
	}
}
