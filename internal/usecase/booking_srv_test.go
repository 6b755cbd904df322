package usecase

import (
	"context"
	"testing"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingService(repo *repository.Repository) BookingService {
	return NewBookingService(repo, events.NewNoopPublisher(), testConfig(), zap.NewNop())
}

func TestCancel_PendingBookingDeleted(t *testing.T) {
	driverID := uuid.New()
	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		DriverID: driverID,
		Status:   entity.BookingStatusPending,
	}

	deleted := false
	repo := &repository.Repository{
		Booking: &mockBookingRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return booking, nil
			},
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				deleted = true
				return nil
			},
		},
	}

	svc := newBookingService(repo)

	err := svc.Cancel(context.Background(), driverID, booking.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestCancel_ConfirmedBookingFlagsRequest(t *testing.T) {
	driverID := uuid.New()
	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		DriverID: driverID,
		Status:   entity.BookingStatusPaid,
	}

	flagged := false
	repo := &repository.Repository{
		Booking: &mockBookingRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return booking, nil
			},
			setCancelRequestFn: func(ctx context.Context, bookingID uuid.UUID) error {
				flagged = true
				return nil
			},
		},
	}

	svc := newBookingService(repo)

	err := svc.Cancel(context.Background(), driverID, booking.ID)
	require.NoError(t, err)
	assert.True(t, flagged)
}

func TestCancel_ForeignBookingNotFound(t *testing.T) {
	booking := &entity.Booking{
		Base:     entity.Base{ID: uuid.New()},
		DriverID: uuid.New(),
		Status:   entity.BookingStatusPaid,
	}

	repo := &repository.Repository{
		Booking: &mockBookingRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		}},
	}

	svc := newBookingService(repo)

	err := svc.Cancel(context.Background(), uuid.New(), booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListBySupplier_ScopedToSupplierListings(t *testing.T) {
	supplierID := uuid.New()
	bookings := []*entity.Booking{
		{Base: entity.Base{ID: uuid.New()}, SupplierID: supplierID, Status: entity.BookingStatusPaid},
		{Base: entity.Base{ID: uuid.New()}, SupplierID: supplierID, Status: entity.BookingStatusReserved},
	}

	// The driver-scoped finders stay unset: listing as a supplier must
	// never fall back to the driver query
	repo := &repository.Repository{
		Booking: &mockBookingRepo{
			findBySupplierIDFn: func(ctx context.Context, id uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
				assert.Equal(t, supplierID, id)
				return bookings, nil
			},
			countBySupplierIDFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
				return int64(len(bookings)), nil
			},
		},
	}

	svc := newBookingService(repo)

	resp, err := svc.ListBySupplier(context.Background(), supplierID, 1, 10)
	require.NoError(t, err)

	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)
}

func TestGetByID_SupplierSeesOwnListingBookings(t *testing.T) {
	supplierID := uuid.New()
	booking := &entity.Booking{
		Base:       entity.Base{ID: uuid.New()},
		SupplierID: supplierID,
		DriverID:   uuid.New(),
		Status:     entity.BookingStatusPaid,
	}

	repo := &repository.Repository{
		Booking: &mockBookingRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		}},
		Payment: &mockPaymentRepo{findByBookingIDFn: func(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
			return nil, nil
		}},
	}

	svc := newBookingService(repo)

	resp, err := svc.GetByID(context.Background(), supplierID, string(entity.RoleSupplier), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID.String(), resp.ID)

	// Another supplier cannot see it
	_, err = svc.GetByID(context.Background(), uuid.New(), string(entity.RoleSupplier), booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
