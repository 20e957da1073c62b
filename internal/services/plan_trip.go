package services

import (
	"context"
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

type PlanTripRequest struct {
	Trip         *domain.Trip
	DepartAt     time.Time
	PickupHours  float64
	DropoffHours float64
}

// PlanTrip orchestrates a full planning run: resolve the three trip locations,
// fetch the driving route through them, and synthesize the HOS schedule.
// The two upstream lookups are the only blocking operations; both honor ctx.
// Resolver, route, capacity, and input failures stay distinguishable through
// the wrapped error chain.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	rules HOSRules,
) (*domain.Route, []domain.DailyLog, error) {
	trip := req.Trip
	if trip == nil {
		return nil, nil, fmt.Errorf("plan trip: %w: trip must be non-nil", domain.ErrInvalidInput)
	}
	if err := trip.Validate(); err != nil {
		return nil, nil, fmt.Errorf("plan trip: %w", err)
	}

	// A failed resolution aborts planning before the scheduler runs; the
	// scheduler never sees fallback coordinates.
	waypoints := make([]domain.Coordinates, 0, 3)
	for _, loc := range []struct {
		field string
		name  string
	}{
		{"current location", trip.CurrentLocation},
		{"pickup location", trip.PickupLocation},
		{"dropoff location", trip.DropoffLocation},
	} {
		coord, err := geocoder.Geocode(ctx, loc.name)
		if err != nil {
			return nil, nil, fmt.Errorf("plan trip: resolve %s %q: %w", loc.field, loc.name, err)
		}
		waypoints = append(waypoints, coord)
	}

	route, err := routes.Route(ctx, waypoints)
	if err != nil {
		return nil, nil, fmt.Errorf("plan trip: route %q -> %q: %w", trip.CurrentLocation, trip.DropoffLocation, err)
	}

	logs, err := BuildSchedule(route, req.DepartAt, trip.CycleHoursUsed, req.PickupHours, req.DropoffHours, rules)
	if err != nil {
		return nil, nil, fmt.Errorf("plan trip: build schedule: %w", err)
	}

	return &route, logs, nil
}
