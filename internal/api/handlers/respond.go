package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/threelines/tradeboard/backend/internal/contracts"
)

// respondJSON encodes before writing so an encoding failure still yields a clean 500
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// respondNonFinite reports a computation that produced NaN or ±Inf
func respondNonFinite(w http.ResponseWriter, fields []string) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"error":  "statistics contain non-finite values",
		"fields": fields,
	})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, contracts.ErrInvalidFilter), errors.Is(err, contracts.ErrInvalidViewMode):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrSourceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseFilter reads botLabel, startDate and endDate query parameters.
// Dates accept RFC 3339 or YYYY-MM-DD; a bare endDate covers that whole day.
func parseFilter(r *http.Request) (contracts.TradeFilter, error) {
	q := r.URL.Query()
	filter := contracts.TradeFilter{BotLabel: q.Get("botLabel")}

	if v := q.Get("startDate"); v != "" {
		ts, ok := contracts.ParseTimestamp(v)
		if !ok {
			return filter, fmt.Errorf("%w: startDate %q", contracts.ErrInvalidFilter, v)
		}
		filter.StartDate = &ts
	}
	if v := q.Get("endDate"); v != "" {
		ts, ok := contracts.ParseEndBound(v)
		if !ok {
			return filter, fmt.Errorf("%w: endDate %q", contracts.ErrInvalidFilter, v)
		}
		filter.EndDate = &ts
	}

	return filter, filter.Validate()
}

// parseIndex reads an optional integer query parameter
func parseIndex(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}
