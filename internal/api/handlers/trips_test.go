package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/adapters/geo"
	"trip-planner-service/internal/adapters/render"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

type memoryTripRepo struct {
	trips map[string]*domain.Trip
}

func newMemoryTripRepo() *memoryTripRepo {
	return &memoryTripRepo{trips: make(map[string]*domain.Trip)}
}

func (r *memoryTripRepo) CreateTrip(_ context.Context, t *domain.Trip) error {
	cp := *t
	r.trips[t.ID] = &cp
	return nil
}

func (r *memoryTripRepo) GetTrip(_ context.Context, id string) (*domain.Trip, error) {
	t, ok := r.trips[id]
	if !ok {
		return nil, ports.ErrTripNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memoryTripRepo) ListTrips(_ context.Context) ([]*domain.Trip, error) {
	out := make([]*domain.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryTripRepo) SavePlan(_ context.Context, id string, route *domain.Route, logs []domain.DailyLog) error {
	t, ok := r.trips[id]
	if !ok {
		return ports.ErrTripNotFound
	}
	t.Route = route
	t.Logs = logs
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestHandler(repo ports.TripRepository, routes ports.RouteProvider) *TripHandler {
	return &TripHandler{
		Repo: repo,
		Geocoder: geo.NewMockGeocoder(map[string]domain.Coordinates{
			"chicago, il":   {Lon: -87.6298, Lat: 41.8781},
			"st. louis, mo": {Lon: -90.1994, Lat: 38.6270},
			"dallas, tx":    {Lon: -96.7970, Lat: 32.7767},
		}),
		Routes:       routes,
		Renderer:     render.NewPDFRenderer(),
		Rules:        services.DefaultHOSRules(),
		PickupHours:  1,
		DropoffHours: 1,
		PlanTimeout:  5 * time.Second,
		Logger:       quietLogger(),
	}
}

func seedTrip(t *testing.T, repo *memoryTripRepo, cycleHours float64) *domain.Trip {
	t.Helper()
	trip := &domain.Trip{
		ID:              "trip-1",
		CurrentLocation: "Chicago, IL",
		PickupLocation:  "St. Louis, MO",
		DropoffLocation: "Dallas, TX",
		CycleHoursUsed:  cycleHours,
		CreatedAt:       time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateTrip(context.Background(), trip))
	return trip
}

func planRequest(t *testing.T, id string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, "/trips/"+id+"/plan", &buf)
	req.SetPathValue("id", id)
	return req
}

func TestCreateTrip(t *testing.T) {
	repo := newMemoryTripRepo()
	h := newTestHandler(repo, &geo.MockRouteProvider{})

	body := `{"current_location":"Chicago, IL","pickup_location":"St. Louis, MO","dropoff_location":"Dallas, TX","cycle_hours_used":12.5}`
	req := httptest.NewRequest(http.MethodPost, "/trips", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.TripResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Chicago, IL", resp.CurrentLocation)
	assert.Equal(t, 12.5, resp.CycleHoursUsed)
	assert.False(t, resp.Planned)

	stored, err := repo.GetTrip(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dallas, TX", stored.DropoffLocation)
}

func TestCreateTripRejectsInvalidInput(t *testing.T) {
	h := newTestHandler(newMemoryTripRepo(), &geo.MockRouteProvider{})

	cases := map[string]string{
		"missing location": `{"current_location":"","pickup_location":"A","dropoff_location":"B","cycle_hours_used":0}`,
		"cycle too high":   `{"current_location":"A","pickup_location":"B","dropoff_location":"C","cycle_hours_used":80}`,
		"unknown field":    `{"current_location":"A","pickup_location":"B","dropoff_location":"C","cycle_hours_used":0,"driver":"x"}`,
		"malformed json":   `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/trips", bytes.NewBufferString(body))
			rec := httptest.NewRecorder()
			h.Collection(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "invalid_input", resp.Code)
		})
	}
}

func TestListTrips(t *testing.T) {
	repo := newMemoryTripRepo()
	seedTrip(t, repo, 10)
	h := newTestHandler(repo, &geo.MockRouteProvider{})

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ListTripsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Trips, 1)
	assert.Equal(t, "trip-1", resp.Trips[0].ID)
}

func TestPlanTripEndpoint(t *testing.T) {
	repo := newMemoryTripRepo()
	seedTrip(t, repo, 5)
	h := newTestHandler(repo, &geo.MockRouteProvider{
		RouteResult: domain.Route{DistanceMiles: 500, DurationHours: 8},
	})

	rec := httptest.NewRecorder()
	h.Plan(rec, planRequest(t, "trip-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.PlanResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "trip-1", resp.TripID)
	assert.Equal(t, 500.0, resp.Route.DistanceMiles)
	require.NotEmpty(t, resp.Logs)

	stored, err := repo.GetTrip(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.True(t, stored.Planned())
}

func TestPlanTripIsIdempotent(t *testing.T) {
	repo := newMemoryTripRepo()
	seedTrip(t, repo, 5)
	provider := &geo.MockRouteProvider{
		RouteResult: domain.Route{DistanceMiles: 500, DurationHours: 8},
	}
	h := newTestHandler(repo, provider)

	rec := httptest.NewRecorder()
	h.Plan(rec, planRequest(t, "trip-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var first dto.PlanResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&first))

	// Second call must serve the stored plan without touching the
	// routing backend again.
	provider.Err = ports.ErrRouteUnavailable
	rec = httptest.NewRecorder()
	h.Plan(rec, planRequest(t, "trip-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var second dto.PlanResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&second))
	assert.Equal(t, first.Route, second.Route)
	assert.Equal(t, len(first.Logs), len(second.Logs))
}

func TestPlanTripErrorMapping(t *testing.T) {
	t.Run("unknown trip", func(t *testing.T) {
		h := newTestHandler(newMemoryTripRepo(), &geo.MockRouteProvider{})
		rec := httptest.NewRecorder()
		h.Plan(rec, planRequest(t, "nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unresolvable location", func(t *testing.T) {
		repo := newMemoryTripRepo()
		trip := seedTrip(t, repo, 5)
		repo.trips[trip.ID].PickupLocation = "Atlantis"

		h := newTestHandler(repo, &geo.MockRouteProvider{
			RouteResult: domain.Route{DistanceMiles: 500, DurationHours: 8},
		})
		rec := httptest.NewRecorder()
		h.Plan(rec, planRequest(t, trip.ID, nil))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "resolution_failed", resp.Code)
	})

	t.Run("exhausted cycle", func(t *testing.T) {
		repo := newMemoryTripRepo()
		seedTrip(t, repo, 70)
		h := newTestHandler(repo, &geo.MockRouteProvider{
			RouteResult: domain.Route{DistanceMiles: 500, DurationHours: 8},
		})
		rec := httptest.NewRecorder()
		h.Plan(rec, planRequest(t, "trip-1", nil))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "capacity_exceeded", resp.Code)
	})

	t.Run("routing backend down", func(t *testing.T) {
		repo := newMemoryTripRepo()
		seedTrip(t, repo, 5)
		h := newTestHandler(repo, &geo.MockRouteProvider{Err: ports.ErrRouteUnavailable})
		rec := httptest.NewRecorder()
		h.Plan(rec, planRequest(t, "trip-1", nil))

		require.Equal(t, http.StatusBadGateway, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "route_unavailable", resp.Code)
	})
}

func TestDownloadLogs(t *testing.T) {
	repo := newMemoryTripRepo()
	seedTrip(t, repo, 5)
	h := newTestHandler(repo, &geo.MockRouteProvider{
		RouteResult: domain.Route{DistanceMiles: 1200, DurationHours: 20},
	})

	rec := httptest.NewRecorder()
	h.Plan(rec, planRequest(t, "trip-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/trips/trip-1/logs", nil)
	req.SetPathValue("id", "trip-1")
	rec = httptest.NewRecorder()
	h.DownloadLogs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "eld_logs_trip_trip-1.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestDownloadLogsRequiresPlan(t *testing.T) {
	repo := newMemoryTripRepo()
	seedTrip(t, repo, 5)
	h := newTestHandler(repo, &geo.MockRouteProvider{})

	req := httptest.NewRequest(http.MethodGet, "/trips/trip-1/logs", nil)
	req.SetPathValue("id", "trip-1")
	rec := httptest.NewRecorder()
	h.DownloadLogs(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
