package geo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Get(ctx context.Context, address string) (*Entry, error) {
	var lat, lon sql.NullFloat64
	entry := Entry{Address: address}

	err := s.DB.QueryRowContext(ctx, `
		SELECT lat, lon, updated_at
		FROM geo_cache
		WHERE address = $1
	`, address).Scan(&lat, &lon, &entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select geo_cache")
	}

	if lat.Valid && lon.Valid {
		entry.Coordinates = &Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}
	return &entry, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, entry Entry) error {
	var lat, lon sql.NullFloat64
	if entry.Coordinates != nil {
		lat = sql.NullFloat64{Float64: entry.Coordinates.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: entry.Coordinates.Lon, Valid: true}
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO geo_cache (address, lat, lon, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (address) DO UPDATE
		SET lat = EXCLUDED.lat, lon = EXCLUDED.lon, updated_at = EXCLUDED.updated_at
	`, entry.Address, lat, lon, entry.UpdatedAt)
	return errors.Wrap(err, "upsert geo_cache")
}

var _ Store = (*PostgresStore)(nil)
