package ports

import (
	"context"
	"errors"

	"trip-planner-service/internal/domain"
)

// ErrLocationNotFound reports that a location name produced no geocoding
// results. It is distinct from transport failures so callers can tell a bad
// address from a broken lookup.
var ErrLocationNotFound = errors.New("location not found")

// Port: a boundary for resolving free-form location names to coordinates.
type Geocoder interface {
	// Resolve a location name to coordinates. Returns ErrLocationNotFound
	// (possibly wrapped) when the name matches nothing.
	Geocode(ctx context.Context, location string) (domain.Coordinates, error)
}
