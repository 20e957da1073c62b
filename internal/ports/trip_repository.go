package ports

import (
	"context"
	"errors"

	"trip-planner-service/internal/domain"
)

// ErrTripNotFound reports a lookup for a trip id that does not exist.
var ErrTripNotFound = errors.New("trip not found")

// Port: a boundary for storing and retrieving Trip entities.
type TripRepository interface {
	// Persist a new trip request.
	CreateTrip(ctx context.Context, trip *domain.Trip) error
	// Retrieve a trip (including any stored plan) by id.
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)
	// Retrieve all trips, newest first.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
	// Store the computed route and daily logs for a trip.
	SavePlan(ctx context.Context, id string, route *domain.Route, logs []domain.DailyLog) error
}
