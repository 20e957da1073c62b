package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// TripHandler serves the trip resource: creation, listing, HOS planning
// and the rendered log sheets.
type TripHandler struct {
	Repo     ports.TripRepository
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Renderer ports.LogRenderer

	Rules        services.HOSRules
	PickupHours  float64
	DropoffHours float64
	PlanTimeout  time.Duration

	Logger *logrus.Logger
}

func (h *TripHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, h.Logger, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func (h *TripHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid_input", "invalid request body: "+err.Error())
		return
	}

	trip := &domain.Trip{
		ID:              uuid.NewString(),
		CurrentLocation: req.CurrentLocation,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		CycleHoursUsed:  req.CycleHoursUsed,
		CreatedAt:       time.Now().UTC(),
	}
	if err := trip.Validate(); err != nil {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	if err := h.Repo.CreateTrip(r.Context(), trip); err != nil {
		h.Logger.WithError(err).Error("create trip")
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal_error", "could not create trip")
		return
	}

	writeJSON(w, r, h.Logger, http.StatusCreated, dto.NewTripResponse(trip))
}

func (h *TripHandler) list(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list trips")
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal_error", "could not list trips")
		return
	}

	resp := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		resp.Trips = append(resp.Trips, dto.NewTripResponse(t))
	}
	writeJSON(w, r, h.Logger, http.StatusOK, resp)
}

func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, h.Logger, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	// Planning is idempotent: a trip that already has a stored plan
	// returns it unchanged.
	if trip.Planned() {
		writeJSON(w, r, h.Logger, http.StatusOK, dto.PlanResponse{
			TripID: trip.ID,
			Route:  *trip.Route,
			Logs:   trip.Logs,
		})
		return
	}

	var req dto.PlanRequest
	if r.Body != nil && r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, r, h.Logger, http.StatusBadRequest, "invalid_input", "invalid request body: "+err.Error())
			return
		}
	}

	departAt := trip.CreatedAt
	if req.DepartAt != nil {
		departAt = req.DepartAt.UTC()
	}
	pickupHours := h.PickupHours
	if req.PickupHours != nil {
		pickupHours = *req.PickupHours
	}
	dropoffHours := h.DropoffHours
	if req.DropoffHours != nil {
		dropoffHours = *req.DropoffHours
	}

	ctx := r.Context()
	if h.PlanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.PlanTimeout)
		defer cancel()
	}

	route, logs, err := services.PlanTrip(ctx, services.PlanTripRequest{
		Trip:         trip,
		DepartAt:     departAt,
		PickupHours:  pickupHours,
		DropoffHours: dropoffHours,
	}, h.Geocoder, h.Routes, h.Rules)
	if err != nil {
		h.writePlanError(w, r, trip, err)
		return
	}

	if err := h.Repo.SavePlan(ctx, trip.ID, route, logs); err != nil {
		h.Logger.WithError(err).WithField("trip_id", trip.ID).Error("save plan")
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal_error", "could not persist plan")
		return
	}

	writeJSON(w, r, h.Logger, http.StatusOK, dto.PlanResponse{
		TripID: trip.ID,
		Route:  *route,
		Logs:   logs,
	})
}

func (h *TripHandler) writePlanError(w http.ResponseWriter, r *http.Request, trip *domain.Trip, err error) {
	var cycleErr *domain.CycleExceededError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, ports.ErrLocationNotFound):
		writeError(w, r, h.Logger, http.StatusUnprocessableEntity, "resolution_failed", err.Error())
	case errors.As(err, &cycleErr):
		writeError(w, r, h.Logger, http.StatusUnprocessableEntity, "capacity_exceeded", err.Error())
	case errors.Is(err, ports.ErrRouteUnavailable):
		h.Logger.WithError(err).WithField("trip_id", trip.ID).Warn("route lookup failed")
		writeError(w, r, h.Logger, http.StatusBadGateway, "route_unavailable", "routing service unavailable")
	default:
		h.Logger.WithError(err).WithField("trip_id", trip.ID).Error("plan trip")
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal_error", "could not plan trip")
	}
}

func (h *TripHandler) DownloadLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, h.Logger, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	trip, ok := h.loadTrip(w, r)
	if !ok {
		return
	}
	if !trip.Planned() {
		writeError(w, r, h.Logger, http.StatusConflict, "not_planned", "trip has no plan yet")
		return
	}

	pdf, err := h.Renderer.Render(trip, trip.Route, trip.Logs)
	if err != nil {
		h.Logger.WithError(err).WithField("trip_id", trip.ID).Error("render logs")
		writeError(w, r, h.Logger, http.StatusInternalServerError, "rendering_failed", "could not render log sheets")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "eld_logs_trip_"+trip.ID+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.Logger.WithError(err).Warn("write pdf response")
	}
}

func (h *TripHandler) loadTrip(w http.ResponseWriter, r *http.Request) (*domain.Trip, bool) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, r, h.Logger, http.StatusBadRequest, "invalid_input", "missing trip id")
		return nil, false
	}

	trip, err := h.Repo.GetTrip(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(w, r, h.Logger, http.StatusNotFound, "not_found", "trip not found")
			return nil, false
		}
		h.Logger.WithError(err).WithField("trip_id", id).Error("load trip")
		writeError(w, r, h.Logger, http.StatusInternalServerError, "internal_error", "could not load trip")
		return nil, false
	}
	return trip, true
}
