package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"trip-planner-service/internal/api/dto"
)

func writeJSON(w http.ResponseWriter, r *http.Request, logger *logrus.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("encode response failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *logrus.Logger, status int, code, msg string) {
	writeJSON(w, r, logger, status, dto.ErrorResponse{Error: msg, Code: code})
}
