package ports

import (
	"context"
	"errors"

	"trip-planner-service/internal/domain"
)

// ErrRouteUnavailable reports that no drivable route exists between the
// requested waypoints.
var ErrRouteUnavailable = errors.New("route unavailable")

// Port: a boundary for computing a driving route through ordered waypoints.
type RouteProvider interface {
	// Return total distance, duration, and path geometry for a route visiting
	// the waypoints in order. At least two waypoints are required.
	Route(ctx context.Context, waypoints []domain.Coordinates) (domain.Route, error)
}
