package geo

import (
	"context"

	"trip-planner-service/internal/domain"
)

// Persistent cache for resolved locations. Implementations must treat a miss
// as (zero, false, nil); errors are reserved for backend failures.
type GeocodeCache interface {
	Get(ctx context.Context, location string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, location string, coord domain.Coordinates) error
}

// Persistent cache for computed routes, keyed by the waypoint string the
// provider derives from the request. A miss returns (nil, nil).
type RouteCache interface {
	Get(ctx context.Context, key string) (*domain.Route, error)
	Put(ctx context.Context, key string, route *domain.Route) error
}
