package vehicle

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vin-gateway/vehicle/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusFor é o único lugar onde erro de domínio vira status HTTP.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidVIN):
		return http.StatusBadRequest, "Invalid VIN format"
	case errors.Is(err, domain.ErrInvalidOrg):
		return http.StatusBadRequest, "Invalid organization ID"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Try again later."
	case errors.Is(err, domain.ErrNotFoundUpstream):
		return http.StatusNotFound, "Vehicle not found in NHTSA"
	case errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusNotFound, "Vehicle not found"
	case errors.Is(err, domain.ErrOrgNotFound):
		return http.StatusNotFound, "Organization not found"
	case errors.Is(err, domain.ErrDuplicateVehicle):
		return http.StatusConflict, "Vehicle already exists in the system"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "Failed to decode VIN"
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusTooManyRequests && h.retryAfter > 0 {
		w.Header().Set("Retry-After", formatInt(int(h.retryAfter.Seconds())))
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("response encode failed", "error", err)
	}
}
