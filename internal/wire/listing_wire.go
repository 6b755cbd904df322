package wire

import (
	"car-rental-booking/internal/adaptor"
	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireListing(
	r chi.Router,
	listingHandler *adaptor.ListingHandler,
	locationHandler *adaptor.LocationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes: searching and browsing need no account
	r.Post("/api/search-listings", listingHandler.Search)
	r.Get("/api/listings/{id}", listingHandler.Get)
	r.Get("/api/locations", locationHandler.List)

	// Supplier routes
	auth := middleware.AuthSession(repo.Session, repo.User, log)
	supplier := middleware.RequireRole(log, entity.RoleSupplier)
	r.With(auth, supplier).Post("/api/listings", listingHandler.Create)
	r.With(auth, supplier).Put("/api/listings/{id}", listingHandler.Update)
	r.With(auth, supplier).Delete("/api/listings/{id}", listingHandler.Delete)

	// Admin routes
	admin := middleware.Admin(log)
	r.With(auth, admin).Post("/api/locations", locationHandler.Create)
}
