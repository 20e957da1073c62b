package dto

import (
	"time"

	"trip-planner-service/internal/domain"
)

type PlanRequest struct {
	DepartAt     *time.Time `json:"depart_at"`
	PickupHours  *float64   `json:"pickup_hours"`
	DropoffHours *float64   `json:"dropoff_hours"`
}

type PlanResponse struct {
	TripID string            `json:"trip_id"`
	Route  domain.Route      `json:"route"`
	Logs   []domain.DailyLog `json:"eld_logs"`
}

// Error payload shape shared by all endpoints. Code distinguishes the failure
// classes the API contract promises to keep apart.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
