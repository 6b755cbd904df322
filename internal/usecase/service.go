package usecase

import (
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/internal/gateway"
	"car-rental-booking/internal/ledger"
	"car-rental-booking/pkg/events"
	"car-rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Location LocationService
	Listing  ListingService
	Checkout CheckoutService
	Booking  BookingService
	Wallet   WalletService
}

func NewService(
	repo *repository.Repository,
	gw gateway.PaymentGateway,
	ledgers ledger.Registry,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	wallet := NewWalletService(repo, ledgers, log)

	return &Service{
		Auth:     NewAuthService(repo, config, log),
		Location: NewLocationService(repo, log),
		Listing:  NewListingService(repo, config, log),
		Checkout: NewCheckoutService(repo, gw, wallet, publisher, config, log),
		Booking:  NewBookingService(repo, publisher, config, log),
		Wallet:   wallet,
	}
}
