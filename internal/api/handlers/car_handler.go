package handlers

import (
	"net/http"

	"github.com/isdelr/mycarexpenses-be/internal/models"
	"github.com/isdelr/mycarexpenses-be/internal/services"
	"github.com/rs/zerolog/log"
)

// CarHandler handles HTTP requests related to cars.
type CarHandler struct {
	service services.CarServiceProvider
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(service services.CarServiceProvider) *CarHandler {
	return &CarHandler{service: service}
}

// GetAll lists the caller's cars.
func (h *CarHandler) GetAll(w http.ResponseWriter, r *http.Request, userID int64) {
	cars, err := h.service.ListCars(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

// Create handles the request to register a new car.
func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request, userID int64) {
	var payload models.NewCar
	if err := decodeJSON(w, r, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	carID, err := h.service.CreateCar(r.Context(), userID, payload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Int64("user_id", userID).Int64("car_id", carID).Msg("Car created")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"car_id":  carID,
		"message": "Car added",
	})
}

// Delete handles the request to delete a car.
func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request, userID int64) {
	carID, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}

	if err := h.service.DeleteCar(r.Context(), userID, carID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Int64("user_id", userID).Int64("car_id", carID).Msg("Car deleted")
	writeMessage(w, http.StatusOK, "Car deleted")
}
