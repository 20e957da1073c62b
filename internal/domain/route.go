package domain

// Represents a computed driving route between trip waypoints.
// A Route is produced once by a route provider and is read-only afterwards:
// the scheduler consumes distance and duration, the renderer and API pass the
// geometry through untouched.
type Route struct {
	DistanceMiles float64       `json:"distance_miles"`
	DurationHours float64       `json:"duration_hours"`
	Geometry      []Coordinates `json:"geometry,omitempty"`
}
