package usecase

import (
	"context"
	"time"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/internal/gateway"
	"car-rental-booking/internal/ledger"

	"github.com/google/uuid"
)

// Hand-rolled mocks: embed the interface and override only what a test
// needs. Calling an unset method panics, which surfaces unexpected calls.

type mockBookingRepo struct {
	repository.BookingRepository
	createFn                func(ctx context.Context, booking *entity.Booking) error
	findByIDFn              func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	updateFn                func(ctx context.Context, booking *entity.Booking) error
	countOverlappingFn      func(ctx context.Context, listingID uuid.UUID, from, to time.Time) (int64, error)
	existsByPaymentIntentFn func(ctx context.Context, paymentIntentID string) (bool, error)
	findBySessionIDFn       func(ctx context.Context, sessionID string) (*entity.Booking, error)
	confirmFn               func(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, paymentIntentID *string) error
	findBySupplierIDFn      func(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	countBySupplierIDFn     func(ctx context.Context, supplierID uuid.UUID) (int64, error)
	deleteTempFn            func(ctx context.Context, bookingID uuid.UUID, sessionID string) (bool, error)
	deleteExpiredFn         func(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	deleteFn                func(ctx context.Context, id uuid.UUID) error
	setCancelRequestFn      func(ctx context.Context, bookingID uuid.UUID) error
}

func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockBookingRepo) SetCancelRequest(ctx context.Context, bookingID uuid.UUID) error {
	return m.setCancelRequestFn(ctx, bookingID)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return m.createFn(ctx, booking)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	return m.updateFn(ctx, booking)
}

func (m *mockBookingRepo) CountOverlapping(ctx context.Context, listingID uuid.UUID, from, to time.Time) (int64, error) {
	return m.countOverlappingFn(ctx, listingID, from, to)
}

func (m *mockBookingRepo) ExistsByPaymentIntent(ctx context.Context, paymentIntentID string) (bool, error) {
	return m.existsByPaymentIntentFn(ctx, paymentIntentID)
}

func (m *mockBookingRepo) FindBySessionID(ctx context.Context, sessionID string) (*entity.Booking, error) {
	return m.findBySessionIDFn(ctx, sessionID)
}

func (m *mockBookingRepo) Confirm(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, paymentIntentID *string) error {
	return m.confirmFn(ctx, bookingID, status, paymentIntentID)
}

func (m *mockBookingRepo) FindBySupplierID(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return m.findBySupplierIDFn(ctx, supplierID, limit, offset)
}

func (m *mockBookingRepo) CountBySupplierID(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	return m.countBySupplierIDFn(ctx, supplierID)
}

func (m *mockBookingRepo) DeleteTemp(ctx context.Context, bookingID uuid.UUID, sessionID string) (bool, error) {
	return m.deleteTempFn(ctx, bookingID, sessionID)
}

func (m *mockBookingRepo) DeleteExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	return m.deleteExpiredFn(ctx, now)
}

type mockListingRepo struct {
	repository.ListingRepository
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
}

func (m *mockListingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	return m.findByIDFn(ctx, id)
}

type mockPaymentRepo struct {
	repository.PaymentRepository
	createFn          func(ctx context.Context, payment *entity.Payment) error
	findByBookingIDFn func(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	return m.createFn(ctx, payment)
}

func (m *mockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	return m.findByBookingIDFn(ctx, bookingID)
}

type mockWalletRepo struct {
	repository.WalletRepository
	findAddressFn func(ctx context.Context, network entity.Network) (string, error)
}

func (m *mockWalletRepo) FindAddress(ctx context.Context, network entity.Network) (string, error) {
	return m.findAddressFn(ctx, network)
}

type mockLedger struct {
	lookupFn func(ctx context.Context, txID string) (*ledger.Transaction, error)
}

func (m *mockLedger) Lookup(ctx context.Context, txID string) (*ledger.Transaction, error) {
	return m.lookupFn(ctx, txID)
}

type mockGateway struct {
	createSessionFn func(ctx context.Context, input gateway.CreateSessionInput) (*gateway.CheckoutSession, error)
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, input gateway.CreateSessionInput) (*gateway.CheckoutSession, error) {
	return m.createSessionFn(ctx, input)
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []string
	ids    []uuid.UUID
}

func (p *recordingPublisher) PublishBookingEvent(eventType string, bookingID uuid.UUID, status string) error {
	p.events = append(p.events, eventType)
	p.ids = append(p.ids, bookingID)
	return nil
}

func (p *recordingPublisher) Stop() {}
