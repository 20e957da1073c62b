package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// NominatimGeocoder implements the Geocoder port against the Nominatim search
// API. It coordinates:
//   - Location-name normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	client  *client
	baseURL string
	cache   GeocodeCache
	logger  *logrus.Logger
}

func NewNominatimGeocoder(baseURL, userAgent string, cache GeocodeCache, logger *logrus.Logger) (*NominatimGeocoder, error) {
	if baseURL == "" {
		return nil, errors.New("nominatim base URL is empty")
	}
	if userAgent == "" {
		return nil, errors.New("nominatim user agent is empty")
	}

	return &NominatimGeocoder{
		client:  newClient(userAgent, 10*time.Second),
		baseURL: baseURL,
		cache:   cache,
		logger:  logger,
	}, nil
}

// Nominatim returns lat/lon as JSON strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a location name to coordinates, consulting the cache before
// issuing an external call. An empty result set maps to ErrLocationNotFound.
func (g *NominatimGeocoder) Geocode(ctx context.Context, location string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, g.logger, "nominatim.Geocode")(&err)

	norm := normalize(location)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: %w: location must be non-empty", domain.ErrInvalidInput)
	}

	if g.cache != nil {
		coord, ok, err := g.cache.Get(ctx, norm)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode cache read: %w", err)
		}
		if ok {
			return coord, nil
		}
	}

	endpoint := g.baseURL + "/search"
	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", norm)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: execute request: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w", norm, err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", location, ports.ErrLocationNotFound)
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: parse lat %q: %w", norm, decoded[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: parse lon %q: %w", norm, decoded[0].Lon, err)
	}

	coord := domain.Coordinates{Lon: lon, Lat: lat}

	if g.cache != nil {
		if err := g.cache.Put(ctx, norm, coord); err != nil {
			g.logger.WithError(err).Warn("geocode cache write failed")
		}
	}

	return coord, nil
}
