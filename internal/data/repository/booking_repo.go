package repository

import (
	"context"
	"fmt"
	"time"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// OverlapPredicate returns the single overlap condition used by both the
// checkout-time availability recheck and the search-time listing filter.
// An existing booking overlaps [from, to) when its start is not after the
// requested end, its end is not before the requested start, and it is not
// void. fromArg/toArg are the positional parameter numbers of the
// requested range in the enclosing query.
func OverlapPredicate(alias string, fromArg, toArg int) string {
	return fmt.Sprintf("%s.from_date <= $%d AND %s.to_date >= $%d AND %s.status <> '%s'",
		alias, toArg, alias, fromArg, alias, entity.BookingStatusVoid)
}

const bookingColumns = `id, order_id, listing_id, supplier_id, driver_id,
	       pickup_location_id, dropoff_location_id, from_date, to_date, status,
	       cancellation, gps, home_delivery, baby_chair, theft_protection,
	       collision_damage_waiver, full_insurance, additional_driver,
	       price, payment_type, session_id, payment_intent_id, customer_id,
	       cancel_request, expire_at, created_at, updated_at`

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByDriverID(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByDriverID(ctx context.Context, driverID uuid.UUID) (int64, error)
	FindBySupplierID(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountBySupplierID(ctx context.Context, supplierID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	SetCancelRequest(ctx context.Context, bookingID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Availability and checkout lifecycle queries
	CountOverlapping(ctx context.Context, listingID uuid.UUID, from, to time.Time) (int64, error)
	ExistsByPaymentIntent(ctx context.Context, paymentIntentID string) (bool, error)
	FindBySessionID(ctx context.Context, sessionID string) (*entity.Booking, error)
	Confirm(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, paymentIntentID *string) error
	DeleteTemp(ctx context.Context, bookingID uuid.UUID, sessionID string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.OrderID,
		booking.ListingID,
		booking.SupplierID,
		booking.DriverID,
		booking.PickupLocationID,
		booking.DropoffLocationID,
		booking.From,
		booking.To,
		booking.Status,
		booking.Options.Cancellation,
		booking.Options.GPS,
		booking.Options.HomeDelivery,
		booking.Options.BabyChair,
		booking.Options.TheftProtection,
		booking.Options.CollisionDamageWaiver,
		booking.Options.FullInsurance,
		booking.Options.AdditionalDriver,
		booking.Price,
		booking.PaymentType,
		booking.SessionID,
		booking.PaymentIntentID,
		booking.CustomerID,
		booking.CancelRequest,
		booking.ExpireAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("driver_id", booking.DriverID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.OrderID, err)
	}

	return nil
}

func (r *bookingRepository) scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OrderID,
		&booking.ListingID,
		&booking.SupplierID,
		&booking.DriverID,
		&booking.PickupLocationID,
		&booking.DropoffLocationID,
		&booking.From,
		&booking.To,
		&booking.Status,
		&booking.Options.Cancellation,
		&booking.Options.GPS,
		&booking.Options.HomeDelivery,
		&booking.Options.BabyChair,
		&booking.Options.TheftProtection,
		&booking.Options.CollisionDamageWaiver,
		&booking.Options.FullInsurance,
		&booking.Options.AdditionalDriver,
		&booking.Price,
		&booking.PaymentType,
		&booking.SessionID,
		&booking.PaymentIntentID,
		&booking.CustomerID,
		&booking.CancelRequest,
		&booking.ExpireAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) FindByDriverID(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE driver_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.findMany(ctx, query, driverID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by driver ID",
			zap.Error(err),
			zap.String("driver_id", driverID.String()),
		)
		return nil, fmt.Errorf("find bookings by driver ID %s: %w", driverID.String(), err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByDriverID(ctx context.Context, driverID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE driver_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, driverID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by driver ID",
			zap.Error(err),
			zap.String("driver_id", driverID.String()),
		)
		return 0, fmt.Errorf("count bookings by driver ID %s: %w", driverID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindBySupplierID(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE supplier_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.findMany(ctx, query, supplierID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by supplier ID",
			zap.Error(err),
			zap.String("supplier_id", supplierID.String()),
		)
		return nil, fmt.Errorf("find bookings by supplier ID %s: %w", supplierID.String(), err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountBySupplierID(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE supplier_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, supplierID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by supplier ID",
			zap.Error(err),
			zap.String("supplier_id", supplierID.String()),
		)
		return 0, fmt.Errorf("count bookings by supplier ID %s: %w", supplierID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET listing_id = $2, supplier_id = $3, driver_id = $4,
		    pickup_location_id = $5, dropoff_location_id = $6,
		    from_date = $7, to_date = $8, status = $9,
		    cancellation = $10, gps = $11, home_delivery = $12, baby_chair = $13,
		    theft_protection = $14, collision_damage_waiver = $15,
		    full_insurance = $16, additional_driver = $17,
		    price = $18, payment_type = $19, session_id = $20,
		    payment_intent_id = $21, customer_id = $22, cancel_request = $23,
		    expire_at = $24, updated_at = $25
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ListingID,
		booking.SupplierID,
		booking.DriverID,
		booking.PickupLocationID,
		booking.DropoffLocationID,
		booking.From,
		booking.To,
		booking.Status,
		booking.Options.Cancellation,
		booking.Options.GPS,
		booking.Options.HomeDelivery,
		booking.Options.BabyChair,
		booking.Options.TheftProtection,
		booking.Options.CollisionDamageWaiver,
		booking.Options.FullInsurance,
		booking.Options.AdditionalDriver,
		booking.Price,
		booking.PaymentType,
		booking.SessionID,
		booking.PaymentIntentID,
		booking.CustomerID,
		booking.CancelRequest,
		booking.ExpireAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) SetCancelRequest(ctx context.Context, bookingID uuid.UUID) error {
	query := `UPDATE bookings SET cancel_request = TRUE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to set cancel request",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("set cancel request on booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

// CountOverlapping counts non-void bookings of a listing whose date range
// intersects [from, to). Capacity remains while inventory > this count.
func (r *bookingRepository) CountOverlapping(ctx context.Context, listingID uuid.UUID, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		WHERE b.listing_id = $3 AND ` + OverlapPredicate("b", 1, 2)

	var count int64
	err := r.db.QueryRow(ctx, query, from, to, listingID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count overlapping bookings",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return 0, fmt.Errorf("count overlapping bookings for listing %s: %w", listingID.String(), err)
	}

	return count, nil
}

// ExistsByPaymentIntent reports whether a ledger transaction ID is already
// attached to any non-deleted booking. Used to reject replayed wallet payments.
func (r *bookingRepository) ExistsByPaymentIntent(ctx context.Context, paymentIntentID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE payment_intent_id = $1 AND status <> $2
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, paymentIntentID, entity.BookingStatusDeleted).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check payment intent",
			zap.Error(err),
			zap.String("payment_intent_id", paymentIntentID),
		)
		return false, fmt.Errorf("check payment intent %s: %w", paymentIntentID, err)
	}

	return exists, nil
}

func (r *bookingRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE session_id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, sessionID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("find booking by session ID %s: %w", sessionID, err)
	}

	return booking, nil
}

// Confirm moves a booking into a terminal payment-success state, clears
// expire_at so the reaper can never remove a completed booking, and records
// the payment intent when one is supplied.
func (r *bookingRepository) Confirm(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, paymentIntentID *string) error {
	query := `
		UPDATE bookings
		SET status = $2, expire_at = NULL,
		    payment_intent_id = COALESCE($3, payment_intent_id),
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, status, paymentIntentID)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

// DeleteTemp removes a pending checkout booking. Both the booking ID and the
// checkout session ID must match so a stale client cannot delete the wrong record.
func (r *bookingRepository) DeleteTemp(ctx context.Context, bookingID uuid.UUID, sessionID string) (bool, error) {
	query := `
		DELETE FROM bookings
		WHERE id = $1 AND session_id = $2 AND status = $3
	`

	result, err := r.db.Exec(ctx, query, bookingID, sessionID, entity.BookingStatusPending)
	if err != nil {
		r.log.Error("Failed to delete temp booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("session_id", sessionID),
		)
		return false, fmt.Errorf("delete temp booking %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// DeleteExpired reaps pending bookings whose expire_at has passed and
// returns their IDs for event publication.
func (r *bookingRepository) DeleteExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `
		DELETE FROM bookings
		WHERE status = $1 AND expire_at IS NOT NULL AND expire_at < $2
		RETURNING id
	`

	rows, err := r.db.Query(ctx, query, entity.BookingStatusPending, now)
	if err != nil {
		r.log.Error("Failed to delete expired bookings", zap.Error(err))
		return nil, fmt.Errorf("delete expired bookings: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan expired booking ID", zap.Error(err))
			return nil, fmt.Errorf("scan expired booking ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
