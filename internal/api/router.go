package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"trip-planner-service/internal/api/handlers"
)

// NewRouter assembles the HTTP surface of the service.
func NewRouter(trips *handlers.TripHandler, logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", handlers.Health(logger))
	mux.HandleFunc("/trips", trips.Collection)
	mux.HandleFunc("/trips/{id}/plan", trips.Plan)
	mux.HandleFunc("/trips/{id}/logs", trips.DownloadLogs)

	return requestLogging(logger, mux)
}
