package wire

import (
	"car-rental-booking/internal/adaptor"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)
	admin := middleware.Admin(log)

	r.With(auth).Get("/api/bookings", bookingHandler.List)
	r.With(auth).Get("/api/bookings/{id}", bookingHandler.Get)
	r.With(auth).Get("/api/bookings/{id}/invoice", bookingHandler.Invoice)
	r.With(auth).Post("/api/bookings/{id}/cancel", bookingHandler.Cancel)

	r.With(auth, admin).Patch("/api/bookings/{id}/status", bookingHandler.UpdateStatus)
	r.With(auth, admin).Post("/api/bookings/{id}/payments", bookingHandler.AddPayment)
}
