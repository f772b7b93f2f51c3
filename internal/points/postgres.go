package points

import (
	"context"
	"fmt"
	"strings"

	"github.com/woozymasta/pinmap/internal/widget"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads and writes point records in a PostGIS table.
// Rows are ordered by their position column; a NULL geom is a record
// without coordinates.
type Repository struct {
	db    *pgxpool.Pool
	table string
}

// NewRepository creates a repository over the given table. The name may be
// schema-qualified, as in "public.points".
func NewRepository(db *pgxpool.Pool, table string) *Repository {
	if table == "" {
		table = "points"
	}
	return &Repository{db: db, table: tableIdentifier(table)}
}

func tableIdentifier(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// EnsureSchema creates the table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
	CREATE EXTENSION IF NOT EXISTS postgis;
	CREATE TABLE IF NOT EXISTS %[1]s (
		id BIGSERIAL PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		param TEXT NOT NULL DEFAULT '',
		geom GEOGRAPHY(POINT, 4326)
	);`, r.table)

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// Load returns all records in position order.
func (r *Repository) Load(ctx context.Context) ([]widget.Record, error) {
	query := fmt.Sprintf(`
		SELECT
			name,
			address,
			param,
			ST_Y(geom::geometry) AS latitude,
			ST_X(geom::geometry) AS longitude
		FROM %s
		ORDER BY position, id
	`, r.table)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute points query: %w", err)
	}
	defer rows.Close()

	var records []widget.Record
	for rows.Next() {
		var rec widget.Record
		if err := rows.Scan(&rec.Name, &rec.Address, &rec.Param, &rec.Latitude, &rec.Longitude); err != nil {
			return nil, fmt.Errorf("repository: failed to scan point: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return records, nil
}

// Insert appends records after the current last position, in one batch.
func (r *Repository) Insert(ctx context.Context, records []widget.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var next int
	err = tx.QueryRow(ctx, fmt.Sprintf(`SELECT COALESCE(MAX(position) + 1, 0) FROM %s`, r.table)).Scan(&next)
	if err != nil {
		return fmt.Errorf("repository: failed to read last position: %w", err)
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (position, name, address, param, geom)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5::float8, $6::float8), 4326)::geography)
	`, r.table)

	batch := &pgx.Batch{}
	for i, rec := range records {
		// ST_MakePoint yields NULL when either coordinate is NULL
		batch.Queue(insert, next+i, rec.Name, rec.Address, rec.Param, rec.Longitude, rec.Latitude)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("repository: failed to insert points: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("repository: failed to count points: %w", err)
	}
	return n, nil
}
