package adaptor

import (
	"encoding/json"
	"net/http"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/dto/request"
	"car-rental-booking/internal/dto/response"
	"car-rental-booking/internal/usecase"
	"car-rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func requesterFromContext(r *http.Request) (uuid.UUID, string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return userID, role, true
}

// List handles GET /api/bookings. Suppliers see the bookings placed on
// their listings; everyone else sees their own rentals.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requesterFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	perPage := utils.ParseInt(r.URL.Query().Get("per_page"), 10)

	var resp *response.PaginatedResponse[*response.BookingResponse]
	var err error
	if role == string(entity.RoleSupplier) {
		resp, err = h.service.ListBySupplier(r.Context(), userID, page, perPage)
	} else {
		resp, err = h.service.ListByDriver(r.Context(), userID, page, perPage)
	}
	if err != nil {
		respondServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings loaded", resp)
}

// Get handles GET /api/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requesterFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	resp, err := h.service.GetByID(r.Context(), userID, role, bookingID)
	if err != nil {
		respondServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "Booking loaded", resp)
}

// Cancel handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requesterFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	if err := h.service.Cancel(r.Context(), userID, bookingID); err != nil {
		respondServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancellation processed", nil)
}

// UpdateStatus handles PATCH /api/bookings/{id}/status (admin)
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), bookingID, &req); err != nil {
		respondServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", nil)
}

// AddPayment handles POST /api/bookings/{id}/payments (admin)
func (h *BookingHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.AddPayment(r.Context(), bookingID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "add payment")
		return
	}

	utils.ResponseCreated(w, "Payment logged", resp)
}

// Invoice handles GET /api/bookings/{id}/invoice
func (h *BookingHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requesterFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	pdf, err := h.service.Invoice(r.Context(), userID, role, bookingID)
	if err != nil {
		respondServiceError(w, h.log, err, "render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+bookingID.String()+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
