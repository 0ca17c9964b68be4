// Package httpapi exposes the server's functionality over a JSON HTTP API.
// Handlers stay thin: decode, delegate to a service, map the error, encode.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akolosov/fincoach/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain sentinels onto HTTP statuses. Anything not
// recognized becomes a generic 500 so internal detail never leaks.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorDuplicateEmail):
		writeError(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, common.ErrorInvalidArgument):
		writeError(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, common.ErrorConfigurationMissing):
		writeError(w, http.StatusServiceUnavailable, "Service is not configured")
	case errors.Is(err, common.ErrorUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, "Upstream model unavailable")
	case errors.Is(err, common.ErrorMalformedUpstreamOutput):
		writeError(w, http.StatusBadGateway, "Upstream model returned malformed output")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
