package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

func TestOSRMRouteProviderConvertsUnits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/route/v1/driving/")
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 804670,
				"duration": 18000,
				"geometry": {"coordinates": [[-87.6298, 41.8781], [-90.1994, 38.627]]}
			}]
		}`))
	}))
	defer srv.Close()

	p, err := NewOSRMRouteProvider(srv.URL, "trip-planner-service/1.0", nil, testLogger())
	require.NoError(t, err)

	route, err := p.Route(context.Background(), []domain.Coordinates{
		{Lon: -87.6298, Lat: 41.8781},
		{Lon: -90.1994, Lat: 38.627},
	})
	require.NoError(t, err)

	assert.InDelta(t, 500.0, route.DistanceMiles, 0.01)
	assert.InDelta(t, 5.0, route.DurationHours, 1e-9)
	require.Len(t, route.Geometry, 2)
	assert.InDelta(t, -87.6298, route.Geometry[0].Lon, 1e-9)
}

func TestOSRMRouteProviderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "NoRoute", "message": "Impossible route between points"}`))
	}))
	defer srv.Close()

	p, err := NewOSRMRouteProvider(srv.URL, "trip-planner-service/1.0", nil, testLogger())
	require.NoError(t, err)

	_, err = p.Route(context.Background(), []domain.Coordinates{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}})
	assert.ErrorIs(t, err, ports.ErrRouteUnavailable)
}

func TestOSRMRouteProviderNeedsTwoWaypoints(t *testing.T) {
	p, err := NewOSRMRouteProvider("http://example.invalid", "trip-planner-service/1.0", nil, testLogger())
	require.NoError(t, err)

	_, err = p.Route(context.Background(), []domain.Coordinates{{Lon: 0, Lat: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
