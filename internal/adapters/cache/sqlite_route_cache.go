package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"trip-planner-service/internal/domain"
)

// SQLite backed cache for computed routes, keyed by the waypoint string of
// the request. Geometry is stored as JSON alongside the scalar metrics.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

func (s *SqliteRouteCache) Get(ctx context.Context, key string) (*domain.Route, error) {
	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}

	q := `
	SELECT distance_miles, duration_hours, geometry
	FROM route_cache
	WHERE waypoints = ?;
	`

	var (
		miles, hours float64
		geometry     []byte
	)
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&miles, &hours, &geometry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	route := &domain.Route{DistanceMiles: miles, DurationHours: hours}
	if len(geometry) > 0 {
		if err := json.Unmarshal(geometry, &route.Geometry); err != nil {
			return nil, fmt.Errorf("get route cache: decode geometry: %w", err)
		}
	}

	return route, nil
}

func (s *SqliteRouteCache) Put(ctx context.Context, key string, route *domain.Route) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: empty waypoint key")
	}
	if route == nil {
		return errors.New("insert route cache: route is nil")
	}

	geometry, err := json.Marshal(route.Geometry)
	if err != nil {
		return fmt.Errorf("insert route cache: encode geometry: %w", err)
	}

	q := `
	INSERT OR REPLACE INTO route_cache (
		waypoints,
		distance_miles,
		duration_hours,
		geometry
	)
	VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, route.DistanceMiles, route.DurationHours, geometry); err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	return nil
}
