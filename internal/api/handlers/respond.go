package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/mycarexpenses-be/internal/models"
	"github.com/isdelr/mycarexpenses-be/internal/services"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// writeJSON sends v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeMessage sends {"message": msg}.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeServiceError translates a service error into a status code. Errors
// outside the service taxonomy are logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeMessage(w, http.StatusBadRequest, publicMessage(err, services.ErrValidation))
	case errors.Is(err, services.ErrConflict):
		writeMessage(w, http.StatusConflict, publicMessage(err, services.ErrConflict))
	case errors.Is(err, services.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, publicMessage(err, services.ErrUnauthorized))
	case errors.Is(err, services.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// publicMessage strips the sentinel prefix from a wrapped service error
// ("validation failed: make and model are required" -> "Make and model are required").
func publicMessage(err, kind error) string {
	msg := strings.TrimPrefix(err.Error(), kind.Error()+": ")
	if msg == "" {
		return kind.Error()
	}
	// Field names such as car_id keep their spelling.
	if first, _, _ := strings.Cut(msg, " "); strings.Contains(first, "_") {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// decodeJSON reads a single JSON document from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// pathID parses the {id} URL parameter. Ids that are not positive integers
// cannot exist, so callers answer them with 404.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseExpenseFilter reads car_id, start_date, end_date and, when
// withCategory is set, category. Empty values are treated as absent.
func parseExpenseFilter(r *http.Request, withCategory bool) models.ExpenseFilter {
	q := r.URL.Query()
	var filter models.ExpenseFilter

	if v := strings.TrimSpace(q.Get("car_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// no car has this id, so the filter matches nothing
			id = 0
		}
		filter.CarID = &id
	}
	if v := strings.TrimSpace(q.Get("start_date")); v != "" {
		filter.StartDate = &v
	}
	if v := strings.TrimSpace(q.Get("end_date")); v != "" {
		filter.EndDate = &v
	}
	if withCategory {
		if v := q.Get("category"); v != "" {
			filter.Category = &v
		}
	}
	return filter
}
