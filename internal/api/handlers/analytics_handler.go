package handlers

import (
	"net/http"

	"github.com/isdelr/mycarexpenses-be/internal/services"
)

// AnalyticsHandler serves expense aggregates.
type AnalyticsHandler struct {
	service services.AnalyticsServiceProvider
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service services.AnalyticsServiceProvider) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Summary handles GET /api/analytics/summary.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request, userID int64) {
	filter := parseExpenseFilter(r, false)

	summary, err := h.service.Summarize(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
