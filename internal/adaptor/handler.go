package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"car-rental-booking/internal/usecase"
	"car-rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Location *LocationHandler
	Listing  *ListingHandler
	Checkout *CheckoutHandler
	Booking  *BookingHandler
	Wallet   *WalletHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Location: NewLocationHandler(service.Location, log),
		Listing:  NewListingHandler(service.Listing, log),
		Checkout: NewCheckoutHandler(service.Checkout, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Wallet:   NewWalletHandler(service.Wallet, log),
	}
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Capacity and payment rejections get their own statuses because the
// checkout UI branches on them.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInterval),
		errors.Is(err, usecase.ErrOptionNotOffered),
		strings.Contains(err.Error(), "validation failed"):
		log.Warn(operation+" rejected - validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnavailable):
		log.Info(operation+" rejected - no capacity", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrTransactionUsed),
		errors.Is(err, usecase.ErrPaymentInvalid):
		log.Warn(operation+" rejected - payment invalid", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, usecase.ErrExternalFailure):
		log.Error(operation+" failed - upstream", zap.Error(err))
		utils.ResponseBadGateway(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
