package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Health provides a minimal liveness check endpoint.
func Health(logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeError(w, r, logger, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}

		writeJSON(w, r, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}
