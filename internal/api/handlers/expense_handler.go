package handlers

import (
	"net/http"

	"github.com/isdelr/mycarexpenses-be/internal/models"
	"github.com/isdelr/mycarexpenses-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ExpenseHandler handles HTTP requests related to expenses.
type ExpenseHandler struct {
	service services.ExpenseServiceProvider
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(service services.ExpenseServiceProvider) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// GetAll lists the caller's expenses, narrowed by the query string filters.
func (h *ExpenseHandler) GetAll(w http.ResponseWriter, r *http.Request, userID int64) {
	filter := parseExpenseFilter(r, true)

	expenses, err := h.service.ListExpenses(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// Create handles the request to log a new expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request, userID int64) {
	var payload models.NewExpense
	if err := decodeJSON(w, r, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expenseID, err := h.service.CreateExpense(r.Context(), userID, payload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Int64("user_id", userID).Int64("expense_id", expenseID).Msg("Expense created")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"expense_id": expenseID,
		"message":    "Expense added",
	})
}

// Update applies a partial update to an expense.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request, userID int64) {
	expenseID, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}

	var patch models.ExpensePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateExpense(r.Context(), userID, expenseID, patch); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Expense updated")
}

// Delete handles the request to delete an expense.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request, userID int64) {
	expenseID, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}

	if err := h.service.DeleteExpense(r.Context(), userID, expenseID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Expense deleted")
}
