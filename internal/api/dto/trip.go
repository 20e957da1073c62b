package dto

import (
	"time"

	"trip-planner-service/internal/domain"
)

type CreateTripRequest struct {
	CurrentLocation string  `json:"current_location"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	CycleHoursUsed  float64 `json:"cycle_hours_used"`
}

type TripResponse struct {
	ID              string    `json:"id"`
	CurrentLocation string    `json:"current_location"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`
	CycleHoursUsed  float64   `json:"cycle_hours_used"`
	CreatedAt       time.Time `json:"created_at"`
	Planned         bool      `json:"planned"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

func NewTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:              t.ID,
		CurrentLocation: t.CurrentLocation,
		PickupLocation:  t.PickupLocation,
		DropoffLocation: t.DropoffLocation,
		CycleHoursUsed:  t.CycleHoursUsed,
		CreatedAt:       t.CreatedAt,
		Planned:         t.Planned(),
	}
}
