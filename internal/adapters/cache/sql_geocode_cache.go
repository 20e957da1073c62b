package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trip-planner-service/internal/domain"
)

// SQLGeocodeCache is a Postgres-backed cache mapping locations to coordinates,
// for deployments sharing one cache across replicas.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

func (s *SQLGeocodeCache) Get(ctx context.Context, location string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	q := `
	SELECT lon, lat
	FROM geocode_cache
	WHERE location = $1;
	`

	var lon, lat float64
	err := s.DB.QueryRowContext(ctx, q, location).Scan(&lon, &lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, true, nil
}

func (s *SQLGeocodeCache) Put(ctx context.Context, location string, coord domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if location == "" {
		return errors.New("insert geocode cache: empty location key")
	}

	q := `
	INSERT INTO geocode_cache (location, lon, lat)
	VALUES ($1, $2, $3)
	ON CONFLICT (location) DO UPDATE SET lon = EXCLUDED.lon, lat = EXCLUDED.lat;
	`

	if _, err := s.DB.ExecContext(ctx, q, location, coord.Lon, coord.Lat); err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	return nil
}
