package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// Unit conversions applied to the raw OSRM metrics. Rounding happens only at
// display time, never here.
const (
	metersPerMile   = 1609.34
	secondsPerHour  = 3600.0
	routeProfileCar = "driving"
)

// OSRMRouteProvider implements the RouteProvider port against the OSRM route
// service. Computed routes are cached by their waypoint key; the path geometry
// is passed through untouched for rendering.
type OSRMRouteProvider struct {
	client  *client
	baseURL string
	profile string
	cache   RouteCache
	logger  *logrus.Logger
}

func NewOSRMRouteProvider(baseURL, userAgent string, cache RouteCache, logger *logrus.Logger) (*OSRMRouteProvider, error) {
	if baseURL == "" {
		return nil, errors.New("osrm base URL is empty")
	}

	return &OSRMRouteProvider{
		client:  newClient(userAgent, 15*time.Second),
		baseURL: baseURL,
		profile: routeProfileCar,
		cache:   cache,
		logger:  logger,
	}, nil
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route computes a driving route visiting the waypoints in order.
func (p *OSRMRouteProvider) Route(ctx context.Context, waypoints []domain.Coordinates) (_ domain.Route, err error) {
	defer obs.Time(ctx, p.logger, "osrm.Route")(&err)

	if len(waypoints) < 2 {
		return domain.Route{}, fmt.Errorf("route: %w: at least two waypoints required", domain.ErrInvalidInput)
	}

	key := waypointKey(waypoints)

	if p.cache != nil {
		cached, err := p.cache.Get(ctx, key)
		if err != nil {
			return domain.Route{}, fmt.Errorf("route cache read: %w", err)
		}
		if cached != nil {
			return *cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s/route/v1/%s/%s", p.baseURL, p.profile, key)
	resp, err := p.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := p.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("overview", "full")
		q.Set("geometries", "geojson")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Route{}, fmt.Errorf("route request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Route{}, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		msg := decoded.Message
		if msg == "" {
			msg = decoded.Code
		}
		return domain.Route{}, fmt.Errorf("%w: %s", ports.ErrRouteUnavailable, msg)
	}

	raw := decoded.Routes[0]
	geometry := make([]domain.Coordinates, 0, len(raw.Geometry.Coordinates))
	for _, pair := range raw.Geometry.Coordinates {
		if len(pair) != 2 {
			return domain.Route{}, fmt.Errorf("route geometry: invalid coordinate pair of length %d", len(pair))
		}
		geometry = append(geometry, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}

	route := domain.Route{
		DistanceMiles: raw.Distance / metersPerMile,
		DurationHours: raw.Duration / secondsPerHour,
		Geometry:      geometry,
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, key, &route); err != nil {
			p.logger.WithError(err).Warn("route cache write failed")
		}
	}

	return route, nil
}

// waypointKey renders waypoints as the lon,lat;lon,lat path segment OSRM
// expects; the same string doubles as the route cache key.
func waypointKey(waypoints []domain.Coordinates) string {
	parts := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		parts = append(parts,
			strconv.FormatFloat(w.Lon, 'f', 6, 64)+","+strconv.FormatFloat(w.Lat, 'f', 6, 64))
	}
	return strings.Join(parts, ";")
}
