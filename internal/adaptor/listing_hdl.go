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

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log,
	}
}

// Search handles POST /api/search-listings
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req request.SearchListingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Search(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "search listings")
		return
	}

	utils.ResponseSuccess(w, "Listings loaded", resp)
}

// Get handles GET /api/listings/{id}
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid listing ID", nil)
		return
	}

	resp, err := h.service.GetByID(r.Context(), listingID)
	if err != nil {
		respondServiceError(w, h.log, err, "get listing")
		return
	}

	utils.ResponseSuccess(w, "Listing loaded", resp)
}

// Create handles POST /api/listings (supplier/admin)
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Create(r.Context(), supplierID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create listing")
		return
	}

	utils.ResponseCreated(w, "Listing created", resp)
}

// Update handles PUT /api/listings/{id} (supplier/admin)
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requesterFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	listingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid listing ID", nil)
		return
	}

	var req request.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Update(r.Context(), userID, role, listingID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update listing")
		return
	}

	utils.ResponseSuccess(w, "Listing updated", resp)
}

// Delete handles DELETE /api/listings/{id} (supplier/admin)
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requesterFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	listingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid listing ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), userID, role, listingID); err != nil {
		respondServiceError(w, h.log, err, "delete listing")
		return
	}

	utils.ResponseSuccess(w, "Listing deleted", nil)
}
