package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trip-planner-service/internal/domain"
)

// SQLite backed cache mapping location strings to geographic coordinates.
// Location keys are expected to be consistent (e.g., normalized) by the
// caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given location.
func (s *SqliteGeocodeCache) Get(ctx context.Context, location string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	q := `
	SELECT lon, lat
	FROM geocode_cache
	WHERE location = ?;
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

// Store a location -> coordinate mapping in the cache.
func (s *SqliteGeocodeCache) Put(ctx context.Context, location string, coord domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if location == "" {
		return errors.New("insert geocode cache: empty location key")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
		location,
		lon,
		lat
	)
	VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, location, coord.Lon, coord.Lat); err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	return nil
}
