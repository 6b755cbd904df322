package adaptor

import (
	"encoding/json"
	"net/http"

	"car-rental-booking/internal/dto/request"
	"car-rental-booking/internal/usecase"
	"car-rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log,
	}
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	driverID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Checkout(r.Context(), driverID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "checkout")
		return
	}

	utils.ResponseCreated(w, "Booking created", resp)
}

// CheckAvailability handles POST /api/check-availability
func (h *CheckoutHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req request.CheckAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "Availability checked", resp)
}

// ConfirmCheckout handles POST /api/confirm-checkout (gateway webhook)
func (h *CheckoutHandler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.ConfirmSession(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "confirm checkout")
		return
	}

	utils.ResponseSuccess(w, "Booking confirmed", resp)
}

// DeleteTempBooking handles DELETE /api/delete-temp-booking/{bookingId}/{sessionId}
func (h *CheckoutHandler) DeleteTempBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "bookingId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	if err := h.service.DeleteTempBooking(r.Context(), bookingID, sessionID); err != nil {
		respondServiceError(w, h.log, err, "delete temp booking")
		return
	}

	utils.ResponseSuccess(w, "Temporary booking deleted", nil)
}
