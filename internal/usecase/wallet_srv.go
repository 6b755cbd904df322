package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/internal/dto/request"
	"car-rental-booking/internal/ledger"
	"car-rental-booking/pkg/utils"

	"go.uber.org/zap"
)

// tokenDecimals converts a price into the token's smallest unit.
// USDT uses 6 decimals on both supported networks.
const tokenDecimals = 1e6

type WalletService interface {
	// CheckTransactionUsed reports whether a ledger transaction ID is
	// already attached to a non-deleted booking.
	CheckTransactionUsed(ctx context.Context, txID string) (bool, error)

	// Reconcile verifies a claimed on-chain payment before a booking may
	// record it: the transaction must be unused, found, successful, paid
	// to the configured receiving address and for the exact expected amount.
	Reconcile(ctx context.Context, network entity.Network, txID string, expectedPrice float64) error

	// GetAddress returns the receiving address the checkout UI shows the
	// customer before they send funds on the given network.
	GetAddress(ctx context.Context, network entity.Network) (string, error)

	UpsertAddress(ctx context.Context, req *request.UpsertWalletRequest) error
}

type walletService struct {
	repo    *repository.Repository
	ledgers ledger.Registry
	log     *zap.Logger
}

func NewWalletService(repo *repository.Repository, ledgers ledger.Registry, log *zap.Logger) WalletService {
	return &walletService{
		repo:    repo,
		ledgers: ledgers,
		log:     log,
	}
}

func (s *walletService) CheckTransactionUsed(ctx context.Context, txID string) (bool, error) {
	used, err := s.repo.Booking.ExistsByPaymentIntent(ctx, txID)
	if err != nil {
		s.log.Error("Failed to check transaction usage", zap.Error(err), zap.String("tx_id", txID))
		return false, fmt.Errorf("check transaction %s: %w", txID, err)
	}

	return used, nil
}

// expectedUnits converts the quoted price to the ledger's smallest unit.
func expectedUnits(price float64) *big.Int {
	return big.NewInt(int64(math.Round(price * tokenDecimals)))
}

func (s *walletService) Reconcile(ctx context.Context, network entity.Network, txID string, expectedPrice float64) error {
	// 1. Reject replayed transaction IDs before touching the ledger
	used, err := s.CheckTransactionUsed(ctx, txID)
	if err != nil {
		return err
	}
	if used {
		s.log.Warn("Wallet payment replay rejected",
			zap.String("tx_id", txID),
			zap.String("network", string(network)),
		)
		return fmt.Errorf("%w: %s", ErrTransactionUsed, txID)
	}

	// 2. Resolve the transaction on its network
	chain, ok := s.ledgers.Get(network)
	if !ok {
		return fmt.Errorf("%w: unsupported network %s", ErrPaymentInvalid, string(network))
	}

	tx, err := chain.Lookup(ctx, txID)
	if err != nil {
		if errors.Is(err, ledger.ErrTxNotFound) {
			return fmt.Errorf("%w: transaction %s", ErrNotFound, txID)
		}
		s.log.Error("Ledger lookup failed",
			zap.Error(err),
			zap.String("tx_id", txID),
			zap.String("network", string(network)),
		)
		return fmt.Errorf("%w: %v", ErrExternalFailure, err)
	}

	if !tx.Succeeded {
		return fmt.Errorf("%w: transaction %s did not succeed", ErrPaymentInvalid, txID)
	}

	// 3. The destination must be our configured receiving address
	address, err := s.repo.Wallet.FindAddress(ctx, network)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalFailure, err)
	}
	if address == "" {
		return fmt.Errorf("%w: no receiving address configured for %s", ErrPaymentInvalid, string(network))
	}
	if !strings.EqualFold(tx.To, address) {
		s.log.Warn("Wallet payment to wrong address rejected",
			zap.String("tx_id", txID),
			zap.String("received_by", tx.To),
		)
		return fmt.Errorf("%w: transaction %s paid the wrong address", ErrPaymentInvalid, txID)
	}

	// 4. The amount must match exactly, in smallest units
	expected := expectedUnits(expectedPrice)
	if tx.Amount == nil || tx.Amount.Cmp(expected) != 0 {
		s.log.Warn("Wallet payment amount mismatch rejected",
			zap.String("tx_id", txID),
			zap.String("expected", expected.String()),
		)
		return fmt.Errorf("%w: transaction %s amount mismatch", ErrPaymentInvalid, txID)
	}

	return nil
}

func (s *walletService) GetAddress(ctx context.Context, network entity.Network) (string, error) {
	address, err := s.repo.Wallet.FindAddress(ctx, network)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalFailure, err)
	}
	if address == "" {
		return "", fmt.Errorf("%w: no receiving address configured for %s", ErrNotFound, string(network))
	}

	return address, nil
}

func (s *walletService) UpsertAddress(ctx context.Context, req *request.UpsertWalletRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Upsert wallet validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	wallet := &entity.Wallet{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Network: entity.Network(req.Network),
		Address: req.Address,
	}

	if err := s.repo.Wallet.Upsert(ctx, wallet); err != nil {
		s.log.Error("Failed to upsert wallet address",
			zap.Error(err),
			zap.String("network", req.Network),
		)
		return fmt.Errorf("failed to save wallet address")
	}

	s.log.Info("Wallet address updated", zap.String("network", req.Network))
	return nil
}
