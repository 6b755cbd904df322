package usecase

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/internal/ledger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	testTxID    = "4f1d2e4a5b9b6a7c3f1d2e4a5b9b6a7c"
	testAddress = "0x5AaE886f8b8C46bDcF52F0d40E23f61a9BD4f6b3"
)

func walletTestService(used bool, tx *ledger.Transaction, lookupErr error) WalletService {
	repo := &repository.Repository{
		Booking: &mockBookingRepo{existsByPaymentIntentFn: func(ctx context.Context, paymentIntentID string) (bool, error) {
			return used, nil
		}},
		Wallet: &mockWalletRepo{findAddressFn: func(ctx context.Context, network entity.Network) (string, error) {
			return testAddress, nil
		}},
	}

	ledgers := ledger.Registry{
		entity.NetworkETH: &mockLedger{lookupFn: func(ctx context.Context, txID string) (*ledger.Transaction, error) {
			if lookupErr != nil {
				return nil, lookupErr
			}
			return tx, nil
		}},
	}

	return NewWalletService(repo, ledgers, zap.NewNop())
}

func successfulTx(amount *big.Int) *ledger.Transaction {
	return &ledger.Transaction{
		ID:        testTxID,
		Succeeded: true,
		To:        testAddress,
		Amount:    amount,
	}
}

func TestReconcile_Success(t *testing.T) {
	svc := walletTestService(false, successfulTx(big.NewInt(165000000)), nil)

	err := svc.Reconcile(context.Background(), entity.NetworkETH, testTxID, 165)
	assert.NoError(t, err)
}

func TestReconcile_ReplayedTransactionRejected(t *testing.T) {
	svc := walletTestService(true, successfulTx(big.NewInt(165000000)), nil)

	err := svc.Reconcile(context.Background(), entity.NetworkETH, testTxID, 165)
	assert.ErrorIs(t, err, ErrTransactionUsed)
}

func TestReconcile_AmountOffByOneRejected(t *testing.T) {
	svc := walletTestService(false, successfulTx(big.NewInt(165000001)), nil)

	err := svc.Reconcile(context.Background(), entity.NetworkETH, testTxID, 165)
	assert.ErrorIs(t, err, ErrPaymentInvalid)
}

func TestReconcile_AddressCaseInsensitive(t *testing.T) {
	tx := successfulTx(big.NewInt(165000000))
	tx.To = "0X5AAE886F8B8C46BDCF52F0D40E23F61A9BD4F6B3"
	svc := walletTestService(false, tx, nil)

	err := svc.Reconcile(context.Background(), entity.NetworkETH, testTxID, 165)
	assert.NoError(t, err)
}

func TestReconcile_WrongAddressRejected(t *testing.T) {
	tx := successfulTx(big.NewInt(165000000))
	tx.To = "0x000000000000000000000000000000000000dead"
	svc := walletTestService(false, tx, nil)

	err := svc.Reconcile(context.Background(), entity.NetworkETH, testTxID, 165)
	assert.ErrorIs(t, err, ErrPaymentInvalid)
}

func TestReconcile_FailedTransactionRejected(t *testing.T) {
	tx := successfulTx(big.NewInt(165000000))
	tx.Succeeded = false
	svc := walletTestService(false, tx, nil)

	err := svc.Reconcile(context.Background(), entity.NetworkETH, testTxID, 165)
	assert.ErrorIs(t, err, ErrPaymentInvalid)
}

func TestReconcile_TransactionNotFound(t *testing.T) {
	svc := walletTestService(false, nil, ledger.ErrTxNotFound)

	err := svc.Reconcile(context.Background(), entity.NetworkETH, testTxID, 165)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReconcile_LedgerDownSurfacesExternalFailure(t *testing.T) {
	svc := walletTestService(false, nil, errors.New("connection refused"))

	err := svc.Reconcile(context.Background(), entity.NetworkETH, testTxID, 165)
	assert.ErrorIs(t, err, ErrExternalFailure)
}

func TestReconcile_UnsupportedNetworkRejected(t *testing.T) {
	svc := walletTestService(false, successfulTx(big.NewInt(165000000)), nil)

	err := svc.Reconcile(context.Background(), entity.NetworkTRX, testTxID, 165)
	assert.ErrorIs(t, err, ErrPaymentInvalid)
}

func TestGetAddress_ReturnsConfiguredAddress(t *testing.T) {
	svc := walletTestService(false, nil, nil)

	address, err := svc.GetAddress(context.Background(), entity.NetworkETH)
	assert.NoError(t, err)
	assert.Equal(t, testAddress, address)
}

func TestGetAddress_UnconfiguredNetworkNotFound(t *testing.T) {
	repo := &repository.Repository{
		Wallet: &mockWalletRepo{findAddressFn: func(ctx context.Context, network entity.Network) (string, error) {
			return "", nil
		}},
	}
	svc := NewWalletService(repo, ledger.Registry{}, zap.NewNop())

	_, err := svc.GetAddress(context.Background(), entity.NetworkTRX)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpectedUnits(t *testing.T) {
	assert.Equal(t, int64(165000000), expectedUnits(165).Int64())
	assert.Equal(t, int64(182500000), expectedUnits(182.5).Int64())
	assert.Equal(t, int64(0), expectedUnits(0).Int64())
}
