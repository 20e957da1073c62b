package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"trip-planner-service/internal/domain"
)

// SQLRouteCache is the Postgres variant of the route cache.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (*domain.Route, error) {
	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}

	q := `
	SELECT distance_miles, duration_hours, geometry
	FROM route_cache
	WHERE waypoints = $1;
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

func (s *SQLRouteCache) Put(ctx context.Context, key string, route *domain.Route) error {
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
	INSERT INTO route_cache (waypoints, distance_miles, duration_hours, geometry)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (waypoints) DO UPDATE SET
		distance_miles = EXCLUDED.distance_miles,
		duration_hours = EXCLUDED.duration_hours,
		geometry = EXCLUDED.geometry;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, route.DistanceMiles, route.DurationHours, geometry); err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	return nil
}
