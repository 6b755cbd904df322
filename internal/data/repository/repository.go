package repository

import (
	"time"

	"car-rental-booking/pkg/database"
	"car-rental-booking/pkg/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Location LocationRepository
	Listing  ListingRepository
	Booking  BookingRepository
	Payment  PaymentRepository
	Wallet   WalletRepository
}

func NewRepository(db database.PgxIface, cache *redis.Client, config *utils.Config, log *zap.Logger) *Repository {
	cacheTTL := time.Duration(config.Ledger.CacheTTLSeconds) * time.Second

	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Location: NewLocationRepository(db, log),
		Listing:  NewListingRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Payment:  NewPaymentRepository(db, log),
		Wallet:   NewWalletRepository(db, cache, cacheTTL, log),
	}
}
