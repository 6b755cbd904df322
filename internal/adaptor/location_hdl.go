package adaptor

import (
	"encoding/json"
	"net/http"

	"car-rental-booking/internal/dto/request"
	"car-rental-booking/internal/usecase"
	"car-rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type LocationHandler struct {
	service usecase.LocationService
	log     *zap.Logger
}

func NewLocationHandler(service usecase.LocationService, log *zap.Logger) *LocationHandler {
	return &LocationHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/locations
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "list locations")
		return
	}

	utils.ResponseSuccess(w, "Locations loaded", resp)
}

// Create handles POST /api/locations (admin)
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create location")
		return
	}

	utils.ResponseCreated(w, "Location created", resp)
}
