package wire

import (
	"car-rental-booking/internal/adaptor"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWallet(
	r chi.Router,
	walletHandler *adaptor.WalletHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// The payment UI shows the receiving address and polls the
	// transaction check before submitting a wallet checkout
	r.Get("/api/wallets/{network}", walletHandler.GetAddress)
	r.Post("/api/check-wallet-transaction", walletHandler.CheckTransaction)

	auth := middleware.AuthSession(repo.Session, repo.User, log)
	admin := middleware.Admin(log)
	r.With(auth, admin).Put("/api/wallets", walletHandler.UpsertAddress)
}
