package usecase

import (
	"context"
	"testing"
	"time"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/internal/dto/request"
	"car-rental-booking/internal/gateway"
	"car-rental-booking/internal/ledger"
	"car-rental-booking/pkg/events"
	"car-rental-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Checkout: utils.CheckoutConfig{
			SessionExpireSeconds: 3600,
			BookingExpireSeconds: 4200,
			ReaperIntervalSec:    300,
		},
		Gateway: utils.GatewayConfig{Currency: "USD"},
	}
}

func availableListing(inventory int) *entity.Listing {
	listing := testListing()
	listing.ID = uuid.New()
	listing.SupplierID = uuid.New()
	listing.Inventory = inventory
	return listing
}

func checkoutRequest(listingID uuid.UUID, paymentType string) *request.CheckoutRequest {
	return &request.CheckoutRequest{
		ListingID:         listingID.String(),
		PickupLocationID:  uuid.New().String(),
		DropoffLocationID: uuid.New().String(),
		From:              "2024-06-01",
		To:                "2024-06-04",
		Options:           request.BookingOptionsRequest{GPS: true},
		PaymentType:       paymentType,
	}
}

func newCheckoutService(repo *repository.Repository, gw gateway.PaymentGateway, wallet WalletService, publisher events.Publisher) CheckoutService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return NewCheckoutService(repo, gw, wallet, publisher, testConfig(), zap.NewNop())
}

func TestCheckout_CapacityExhausted(t *testing.T) {
	listing := availableListing(2)

	repo := &repository.Repository{
		Listing: &mockListingRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
			return listing, nil
		}},
		Booking: &mockBookingRepo{countOverlappingFn: func(ctx context.Context, listingID uuid.UUID, from, to time.Time) (int64, error) {
			// Already two non-void overlapping bookings against inventory 2
			return 2, nil
		}},
	}

	svc := newCheckoutService(repo, nil, nil, nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), checkoutRequest(listing.ID, "payLater"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCheckout_DisjointIntervalAccepted(t *testing.T) {
	listing := availableListing(2)

	var created *entity.Booking
	repo := &repository.Repository{
		Listing: &mockListingRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
			return listing, nil
		}},
		Booking: &mockBookingRepo{
			countOverlappingFn: func(ctx context.Context, listingID uuid.UUID, from, to time.Time) (int64, error) {
				return 0, nil
			},
			createFn: func(ctx context.Context, booking *entity.Booking) error {
				created = booking
				return nil
			},
		},
	}

	svc := newCheckoutService(repo, nil, nil, nil)

	resp, err := svc.Checkout(context.Background(), uuid.New(), checkoutRequest(listing.ID, "payLater"))
	require.NoError(t, err)
	require.NotNil(t, created)

	// Pay later reserves immediately, with the surcharge applied:
	// (50+5)*3 = 165, plus 10% fee rounded = 17 -> 182
	assert.Equal(t, entity.BookingStatusReserved, resp.Status)
	assert.Equal(t, 182.0, resp.Price)
	assert.Nil(t, created.ExpireAt)
	assert.Empty(t, resp.SessionID)
}

func TestCheckout_UnofferedOptionRejected(t *testing.T) {
	listing := availableListing(1)

	repo := &repository.Repository{
		Listing: &mockListingRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
			return listing, nil
		}},
	}

	svc := newCheckoutService(repo, nil, nil, nil)

	req := checkoutRequest(listing.ID, "payLater")
	req.Options.HomeDelivery = true

	_, err := svc.Checkout(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrOptionNotOffered)
}

func TestCheckout_CardCreatesPendingWithExpiry(t *testing.T) {
	listing := availableListing(1)

	var created *entity.Booking
	repo := &repository.Repository{
		Listing: &mockListingRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
			return listing, nil
		}},
		Booking: &mockBookingRepo{
			countOverlappingFn: func(ctx context.Context, listingID uuid.UUID, from, to time.Time) (int64, error) {
				return 0, nil
			},
			createFn: func(ctx context.Context, booking *entity.Booking) error {
				created = booking
				return nil
			},
		},
	}

	gw := &mockGateway{createSessionFn: func(ctx context.Context, input gateway.CreateSessionInput) (*gateway.CheckoutSession, error) {
		assert.Equal(t, 165.0, input.Amount)
		assert.Equal(t, 3600, input.ExpireSeconds)
		return &gateway.CheckoutSession{
			SessionID:    "cs_test_1",
			CustomerID:   "cus_test_1",
			ClientSecret: "secret_1",
		}, nil
	}}

	before := time.Now()
	svc := newCheckoutService(repo, gw, nil, nil)

	resp, err := svc.Checkout(context.Background(), uuid.New(), checkoutRequest(listing.ID, "cardPayment"))
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, "cs_test_1", resp.SessionID)
	assert.Equal(t, "secret_1", resp.ClientSecret)

	// expire_at is session lifetime plus grace from booking creation
	require.NotNil(t, created.ExpireAt)
	wantExpire := before.Add(4200 * time.Second)
	assert.WithinDuration(t, wantExpire, *created.ExpireAt, 5*time.Second)
}

func TestCheckout_WalletRecordsTransaction(t *testing.T) {
	listing := availableListing(1)
	txID := "9b6a7c3f1d2e4a5b9b6a7c3f1d2e4a5b"

	var created *entity.Booking
	var payment *entity.Payment
	repo := &repository.Repository{
		Listing: &mockListingRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
			return listing, nil
		}},
		Booking: &mockBookingRepo{
			countOverlappingFn: func(ctx context.Context, listingID uuid.UUID, from, to time.Time) (int64, error) {
				return 0, nil
			},
			existsByPaymentIntentFn: func(ctx context.Context, paymentIntentID string) (bool, error) {
				return false, nil
			},
			createFn: func(ctx context.Context, booking *entity.Booking) error {
				created = booking
				return nil
			},
		},
		Payment: &mockPaymentRepo{createFn: func(ctx context.Context, p *entity.Payment) error {
			payment = p
			return nil
		}},
		Wallet: &mockWalletRepo{findAddressFn: func(ctx context.Context, network entity.Network) (string, error) {
			return "TReceivingAddress111111111111111111", nil
		}},
	}

	ledgers := ledger.Registry{
		entity.NetworkTRX: &mockLedger{lookupFn: func(ctx context.Context, id string) (*ledger.Transaction, error) {
			return &ledger.Transaction{
				ID:        id,
				Succeeded: true,
				To:        "treceivingaddress111111111111111111",
				Amount:    expectedUnits(165),
			}, nil
		}},
	}
	wallet := NewWalletService(repo, ledgers, zap.NewNop())

	svc := newCheckoutService(repo, nil, wallet, nil)

	req := checkoutRequest(listing.ID, "walletPayment")
	req.Wallet = &request.WalletPaymentRequest{Network: "TRX", TransactionID: txID}

	resp, err := svc.Checkout(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, entity.BookingStatusPaid, resp.Status)
	require.NotNil(t, created.PaymentIntentID)
	assert.Equal(t, txID, *created.PaymentIntentID)

	require.NotNil(t, payment)
	assert.Equal(t, entity.PaymentTypeWallet, payment.Type)
	assert.Equal(t, 165.0, payment.Amount)
}

func TestConfirmSession_PromotesAndClearsExpiry(t *testing.T) {
	bookingID := uuid.New()
	expireAt := time.Now().Add(time.Hour)
	sessionID := "cs_test_2"
	pending := &entity.Booking{
		Base:      entity.Base{ID: bookingID},
		OrderID:   "RENT-20240601-100000-0001",
		ListingID: uuid.New(),
		Status:    entity.BookingStatusPending,
		SessionID: &sessionID,
		Price:     165,
		ExpireAt:  &expireAt,
	}

	var confirmedStatus entity.BookingStatus
	var confirmedIntent *string
	repo := &repository.Repository{
		Booking: &mockBookingRepo{
			findBySessionIDFn: func(ctx context.Context, id string) (*entity.Booking, error) {
				return pending, nil
			},
			confirmFn: func(ctx context.Context, id uuid.UUID, status entity.BookingStatus, paymentIntentID *string) error {
				confirmedStatus = status
				confirmedIntent = paymentIntentID
				return nil
			},
		},
		Payment: &mockPaymentRepo{createFn: func(ctx context.Context, p *entity.Payment) error {
			return nil
		}},
	}

	publisher := &recordingPublisher{}
	svc := newCheckoutService(repo, nil, nil, publisher)

	resp, err := svc.ConfirmSession(context.Background(), &request.ConfirmCheckoutRequest{
		SessionID:       sessionID,
		PaymentIntentID: "pi_test_1",
		Succeeded:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusPaid, confirmedStatus)
	assert.Equal(t, entity.BookingStatusPaid, resp.Status)

	require.NotNil(t, confirmedIntent)
	assert.Equal(t, "pi_test_1", *confirmedIntent)
	assert.Nil(t, pending.ExpireAt)

	assert.Contains(t, publisher.events, events.EventBookingConfirmed)
}

func TestConfirmSession_RedeliveredWebhookIsNoOp(t *testing.T) {
	sessionID := "cs_test_4"
	intentID := "pi_test_1"
	settled := &entity.Booking{
		Base:            entity.Base{ID: uuid.New()},
		Status:          entity.BookingStatusPaid,
		SessionID:       &sessionID,
		PaymentIntentID: &intentID,
		Price:           165,
	}

	// confirmFn and the payment createFn stay unset: a second Confirm or
	// a duplicate payment row would panic the mock
	repo := &repository.Repository{
		Booking: &mockBookingRepo{
			findBySessionIDFn: func(ctx context.Context, id string) (*entity.Booking, error) {
				return settled, nil
			},
		},
	}

	publisher := &recordingPublisher{}
	svc := newCheckoutService(repo, nil, nil, publisher)

	resp, err := svc.ConfirmSession(context.Background(), &request.ConfirmCheckoutRequest{
		SessionID:       sessionID,
		PaymentIntentID: intentID,
		Succeeded:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusPaid, resp.Status)
	assert.Empty(t, publisher.events)
}

func TestConfirmSession_FailureDeletesPending(t *testing.T) {
	bookingID := uuid.New()
	sessionID := "cs_test_3"
	pending := &entity.Booking{
		Base:      entity.Base{ID: bookingID},
		Status:    entity.BookingStatusPending,
		SessionID: &sessionID,
	}

	deleted := false
	repo := &repository.Repository{
		Booking: &mockBookingRepo{
			findBySessionIDFn: func(ctx context.Context, id string) (*entity.Booking, error) {
				return pending, nil
			},
			deleteTempFn: func(ctx context.Context, id uuid.UUID, session string) (bool, error) {
				deleted = true
				assert.Equal(t, bookingID, id)
				assert.Equal(t, sessionID, session)
				return true, nil
			},
		},
	}

	svc := newCheckoutService(repo, nil, nil, nil)

	_, err := svc.ConfirmSession(context.Background(), &request.ConfirmCheckoutRequest{
		SessionID:       sessionID,
		PaymentIntentID: "pi_test_2",
		Succeeded:       false,
	})

	assert.ErrorIs(t, err, ErrPaymentInvalid)
	assert.True(t, deleted)
}

func TestDeleteTempBooking_RequiresMatchingSession(t *testing.T) {
	repo := &repository.Repository{
		Booking: &mockBookingRepo{deleteTempFn: func(ctx context.Context, id uuid.UUID, session string) (bool, error) {
			return false, nil
		}},
	}

	svc := newCheckoutService(repo, nil, nil, nil)

	err := svc.DeleteTempBooking(context.Background(), uuid.New(), "cs_wrong")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpirePendingBookings_PublishesEvents(t *testing.T) {
	reaped := []uuid.UUID{uuid.New(), uuid.New()}

	repo := &repository.Repository{
		Booking: &mockBookingRepo{deleteExpiredFn: func(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
			return reaped, nil
		}},
	}

	publisher := &recordingPublisher{}
	svc := newCheckoutService(repo, nil, nil, publisher)

	count, err := svc.ExpirePendingBookings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, []string{events.EventBookingExpired, events.EventBookingExpired}, publisher.events)
	assert.Equal(t, reaped, publisher.ids)
}

func TestCheckAvailability_ListingNotFound(t *testing.T) {
	repo := &repository.Repository{
		Listing: &mockListingRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
			return nil, nil
		}},
	}

	svc := newCheckoutService(repo, nil, nil, nil)

	_, err := svc.CheckAvailability(context.Background(), &request.CheckAvailabilityRequest{
		ListingID: uuid.New().String(),
		From:      "2024-06-01",
		To:        "2024-06-04",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckAvailability_ZeroInventoryNeverAvailable(t *testing.T) {
	listing := availableListing(0)

	repo := &repository.Repository{
		Listing: &mockListingRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
			return listing, nil
		}},
	}

	svc := newCheckoutService(repo, nil, nil, nil)

	resp, err := svc.CheckAvailability(context.Background(), &request.CheckAvailabilityRequest{
		ListingID: listing.ID.String(),
		From:      "2024-06-01",
		To:        "2024-06-04",
	})
	require.NoError(t, err)

	assert.False(t, resp.Available)
}

func TestCheckAvailability_NoBookingsAvailable(t *testing.T) {
	listing := availableListing(1)

	repo := &repository.Repository{
		Listing: &mockListingRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
			return listing, nil
		}},
		Booking: &mockBookingRepo{countOverlappingFn: func(ctx context.Context, listingID uuid.UUID, from, to time.Time) (int64, error) {
			return 0, nil
		}},
	}

	svc := newCheckoutService(repo, nil, nil, nil)

	resp, err := svc.CheckAvailability(context.Background(), &request.CheckAvailabilityRequest{
		ListingID: listing.ID.String(),
		From:      "2024-06-01",
		To:        "2024-06-04",
	})
	require.NoError(t, err)

	assert.True(t, resp.Available)
}

func TestCheckout_InvalidIntervalRejected(t *testing.T) {
	svc := newCheckoutService(&repository.Repository{}, nil, nil, nil)

	req := checkoutRequest(uuid.New(), "payLater")
	req.From = "2024-06-04"
	req.To = "2024-06-01"

	_, err := svc.Checkout(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
