package wire

import (
	"net/http"

	"car-rental-booking/internal/adaptor"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/internal/usecase"
	"car-rental-booking/pkg/middleware"
	"car-rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

func Wiring(service *usecase.Service, repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, logger)
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireListing(r, handler.Listing, handler.Location, repo, logger)
	wireCheckout(r, handler.Checkout, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wireWallet(r, handler.Wallet, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
