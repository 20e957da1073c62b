package ports

import "trip-planner-service/internal/domain"

// Port: a boundary for rendering a computed schedule as a document.
// The renderer consumes the schedule as opaque immutable data and performs no
// scheduling logic of its own.
type LogRenderer interface {
	// Render the trip's daily logs as a paginated document (one page per day).
	Render(trip *domain.Trip, route *domain.Route, logs []domain.DailyLog) ([]byte, error)
}
