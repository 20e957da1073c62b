package domain

import (
	"fmt"
	"strings"
	"time"
)

// Upper bound of the rolling 8-day cycle; a trip request may not claim more
// hours than the cycle itself allows.
const MaxCycleHoursUsed = 70.0

// Trip aggregate: an interstate trip request plus, once planned, its computed
// route and daily logs. The request fields are immutable after creation; the
// plan is written once by the planner and served idempotently afterwards.
type Trip struct {
	ID              string     `json:"id"`
	CurrentLocation string     `json:"current_location"`
	PickupLocation  string     `json:"pickup_location"`
	DropoffLocation string     `json:"dropoff_location"`
	CycleHoursUsed  float64    `json:"cycle_hours_used"`
	CreatedAt       time.Time  `json:"created_at"`
	Route           *Route     `json:"route,omitempty"`
	Logs            []DailyLog `json:"logs,omitempty"`
}

// Planned reports whether a schedule has already been computed and stored.
func (t *Trip) Planned() bool { return t.Route != nil && len(t.Logs) > 0 }

// Validate rejects malformed trip requests before any planning work starts.
func (t *Trip) Validate() error {
	if strings.TrimSpace(t.CurrentLocation) == "" {
		return fmt.Errorf("%w: current location must be non-empty", ErrInvalidInput)
	}
	if strings.TrimSpace(t.PickupLocation) == "" {
		return fmt.Errorf("%w: pickup location must be non-empty", ErrInvalidInput)
	}
	if strings.TrimSpace(t.DropoffLocation) == "" {
		return fmt.Errorf("%w: dropoff location must be non-empty", ErrInvalidInput)
	}
	if t.CycleHoursUsed < 0 || t.CycleHoursUsed > MaxCycleHoursUsed {
		return fmt.Errorf(
			"%w: cycle_hours_used must be within [0, %g], got %g",
			ErrInvalidInput, MaxCycleHoursUsed, t.CycleHoursUsed,
		)
	}
	return nil
}
