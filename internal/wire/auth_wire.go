package wire

import (
	"car-rental-booking/internal/adaptor"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// Protected routes
	auth := middleware.AuthSession(repo.Session, repo.User, log)
	r.With(auth).Post("/api/logout", authHandler.Logout)
	r.With(auth).Get("/api/profile", authHandler.Profile)
}
