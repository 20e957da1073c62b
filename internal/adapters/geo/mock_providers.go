package geo

import (
	"context"
	"fmt"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// In-memory Geocoder for tests.
type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(locations map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(locations))
	for k, v := range locations {
		m[normalize(k)] = v
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, location string) (domain.Coordinates, error) {
	c, ok := g.m[normalize(location)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", location, ports.ErrLocationNotFound)
	}
	return c, nil
}

// Fixed-response RouteProvider for tests.
type MockRouteProvider struct {
	RouteResult domain.Route
	Err         error
}

func (p *MockRouteProvider) Route(ctx context.Context, waypoints []domain.Coordinates) (domain.Route, error) {
	if p.Err != nil {
		return domain.Route{}, p.Err
	}
	if len(waypoints) < 2 {
		return domain.Route{}, fmt.Errorf("mock route: need at least two waypoints, got %d", len(waypoints))
	}
	return p.RouteResult, nil
}
