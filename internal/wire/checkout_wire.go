package wire

import (
	"car-rental-booking/internal/adaptor"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Availability can be checked before logging in
	r.Post("/api/check-availability", checkoutHandler.CheckAvailability)

	// The gateway webhook and the abandon-checkout cleanup carry their
	// own correlation IDs instead of a session token
	r.Post("/api/confirm-checkout", checkoutHandler.ConfirmCheckout)
	r.Delete("/api/delete-temp-booking/{bookingId}/{sessionId}", checkoutHandler.DeleteTempBooking)

	// Checkout itself needs an account
	auth := middleware.AuthSession(repo.Session, repo.User, log)
	r.With(auth).Post("/api/checkout", checkoutHandler.Checkout)
}
