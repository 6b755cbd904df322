package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/internal/dto/request"
	"car-rental-booking/internal/dto/response"
	"car-rental-booking/internal/gateway"
	"car-rental-booking/pkg/events"
	"car-rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutService interface {
	// Checkout prices the request, rechecks capacity and creates the
	// booking under the chosen tender. Card payments leave the booking
	// pending until ConfirmSession; wallet payments are reconciled on
	// the ledger first; pay-later and on-pickup tenders reserve directly.
	Checkout(ctx context.Context, driverID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error)

	CheckAvailability(ctx context.Context, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error)

	// ConfirmSession reacts to the card gateway webhook.
	ConfirmSession(ctx context.Context, req *request.ConfirmCheckoutRequest) (*response.BookingResponse, error)

	// DeleteTempBooking removes an abandoned pending booking, identified
	// by both IDs so a stale client cannot delete the wrong record.
	DeleteTempBooking(ctx context.Context, bookingID uuid.UUID, sessionID string) error

	// ExpirePendingBookings reaps pending bookings past their expire_at.
	ExpirePendingBookings(ctx context.Context) (int, error)

	StartReaper(ctx context.Context)
}

type checkoutService struct {
	repo      *repository.Repository
	gateway   gateway.PaymentGateway
	wallet    WalletService
	publisher events.Publisher
	config    *utils.Config
	log       *zap.Logger
}

func NewCheckoutService(
	repo *repository.Repository,
	gw gateway.PaymentGateway,
	wallet WalletService,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) CheckoutService {
	return &checkoutService{
		repo:      repo,
		gateway:   gw,
		wallet:    wallet,
		publisher: publisher,
		config:    config,
		log:       log,
	}
}

// parseRentalDate accepts either a date ("2006-01-02") or a full RFC 3339
// timestamp.
func parseRentalDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unparseable date %q", ErrInvalidInterval, value)
	}
	return t, nil
}

func parseInterval(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := parseRentalDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseRentalDate(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must be before to", ErrInvalidInterval)
	}
	return from, to, nil
}

// hasCapacity applies the shared overlap count against the listing's
// fixed inventory. The same predicate backs the search filter, so both
// call sites agree on what "overlapping" means.
func (s *checkoutService) hasCapacity(ctx context.Context, listing *entity.Listing, from, to time.Time) (bool, error) {
	if listing.Inventory <= 0 {
		return false, nil
	}

	overlapping, err := s.repo.Booking.CountOverlapping(ctx, listing.ID, from, to)
	if err != nil {
		return false, err
	}

	return int64(listing.Inventory) > overlapping, nil
}

func (s *checkoutService) CheckAvailability(ctx context.Context, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Check availability validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, utils.FormatValidationErrors(errs))
	}

	from, to, err := parseInterval(req.From, req.To)
	if err != nil {
		return nil, err
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid listing ID", ErrInvalidInterval)
	}

	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: listing %s", ErrNotFound, req.ListingID)
	}

	available := listing.Status == entity.ListingStatusActive && listing.Available
	if available {
		available, err = s.hasCapacity(ctx, listing, from, to)
		if err != nil {
			return nil, err
		}
	}

	return &response.AvailabilityResponse{
		ListingID: req.ListingID,
		From:      req.From,
		To:        req.To,
		Available: available,
	}, nil
}

func (s *checkoutService) Checkout(ctx context.Context, driverID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	// 1. Validate input before any side effect
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, utils.FormatValidationErrors(errs))
	}

	from, to, err := parseInterval(req.From, req.To)
	if err != nil {
		return nil, err
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid listing ID", ErrInvalidInterval)
	}
	pickupID, err := uuid.Parse(req.PickupLocationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pickup location ID", ErrInvalidInterval)
	}
	dropoffID, err := uuid.Parse(req.DropoffLocationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dropoff location ID", ErrInvalidInterval)
	}

	tender := entity.PaymentType(req.PaymentType)
	if tender == entity.PaymentTypeWallet && req.Wallet == nil {
		return nil, fmt.Errorf("%w: wallet payment details required", ErrInvalidInterval)
	}

	// 2. Load the listing snapshot
	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: listing %s", ErrNotFound, req.ListingID)
	}
	if listing.Status != entity.ListingStatusActive || !listing.Available {
		return nil, fmt.Errorf("%w: listing %s", ErrUnavailable, req.ListingID)
	}

	// 3. Price the rental
	options := entity.BookingOptions{
		Cancellation:          req.Options.Cancellation,
		GPS:                   req.Options.GPS,
		HomeDelivery:          req.Options.HomeDelivery,
		BabyChair:             req.Options.BabyChair,
		TheftProtection:       req.Options.TheftProtection,
		CollisionDamageWaiver: req.Options.CollisionDamageWaiver,
		FullInsurance:         req.Options.FullInsurance,
		AdditionalDriver:      req.Options.AdditionalDriver,
	}

	price, err := Quote(listing, from, to, options, tender)
	if err != nil {
		return nil, err
	}

	// 4. Recheck capacity right before creating the booking. This only
	// narrows the race between two checkouts for the last unit; the
	// design accepts that both can pass before either commits.
	ok, err := s.hasCapacity(ctx, listing, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Info("Checkout rejected, capacity exhausted",
			zap.String("listing_id", listing.ID.String()),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("%w: listing %s for %s to %s",
			ErrUnavailable, listing.ID.String(), req.From, req.To)
	}

	now := time.Now()
	paymentType := string(tender)
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:           utils.GenerateOrderID(),
		ListingID:         listing.ID,
		SupplierID:        listing.SupplierID,
		DriverID:          driverID,
		PickupLocationID:  pickupID,
		DropoffLocationID: dropoffID,
		From:              from,
		To:                to,
		Options:           options,
		Price:             price,
		PaymentType:       &paymentType,
	}

	resp := &response.CheckoutResponse{
		BookingID: booking.ID.String(),
		OrderID:   booking.OrderID,
		Price:     price,
	}

	// 5. Branch on tender
	switch tender {
	case entity.PaymentTypeCard:
		session, err := s.gateway.CreateCheckoutSession(ctx, gateway.CreateSessionInput{
			Amount:        price,
			Currency:      s.config.Gateway.Currency,
			Description:   fmt.Sprintf("%s (%s)", listing.CarName, booking.OrderID),
			ExpireSeconds: s.config.Checkout.SessionExpireSeconds,
		})
		if err != nil {
			s.log.Error("Failed to create checkout session",
				zap.Error(err),
				zap.String("order_id", booking.OrderID),
			)
			return nil, fmt.Errorf("%w: %v", ErrExternalFailure, err)
		}

		// Pending until the webhook confirms; the reaper removes it
		// if payment never completes within the grace window.
		expireAt := now.Add(time.Duration(s.config.Checkout.BookingExpireSeconds) * time.Second)
		booking.Status = entity.BookingStatusPending
		booking.SessionID = &session.SessionID
		booking.ExpireAt = &expireAt
		if session.CustomerID != "" {
			booking.CustomerID = &session.CustomerID
		}

		resp.SessionID = session.SessionID
		resp.ClientSecret = session.ClientSecret
		resp.ExpireAt = &expireAt

	case entity.PaymentTypeWallet:
		network := entity.Network(req.Wallet.Network)
		if err := s.wallet.Reconcile(ctx, network, req.Wallet.TransactionID, price); err != nil {
			return nil, err
		}
		booking.Status = entity.BookingStatusPaid
		booking.PaymentIntentID = &req.Wallet.TransactionID

	case entity.PaymentTypePayLater, entity.PaymentTypeCash, entity.PaymentTypePointOfSell:
		booking.Status = entity.BookingStatusReserved

	default:
		return nil, fmt.Errorf("%w: unsupported payment type %s", ErrInvalidInterval, req.PaymentType)
	}

	// 6. Persist the booking
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, err
	}

	// 7. Log the wallet tender against the booking
	if tender == entity.PaymentTypeWallet {
		payment := &entity.Payment{
			BaseSimple: entity.BaseSimple{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
			},
			BookingID: booking.ID,
			Type:      entity.PaymentTypeWallet,
			Amount:    price,
			Reference: &req.Wallet.TransactionID,
		}
		if err := s.repo.Payment.Create(ctx, payment); err != nil {
			s.log.Error("Failed to log wallet payment",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}
	}

	if err := s.publisher.PublishBookingEvent(events.EventBookingCreated, booking.ID, string(booking.Status)); err != nil {
		s.log.Warn("Failed to publish booking created event", zap.Error(err))
	}

	s.log.Info("Checkout completed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("status", string(booking.Status)),
		zap.Float64("price", price),
	)

	resp.Status = booking.Status
	return resp, nil
}

func (s *checkoutService) ConfirmSession(ctx context.Context, req *request.ConfirmCheckoutRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindBySessionID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, req.SessionID)
	}

	// Failed payment: drop the hold immediately instead of waiting for
	// the reaper.
	if !req.Succeeded {
		if booking.Status == entity.BookingStatusPending {
			if _, err := s.repo.Booking.DeleteTemp(ctx, booking.ID, req.SessionID); err != nil {
				return nil, err
			}
			if err := s.publisher.PublishBookingEvent(events.EventBookingCancelled, booking.ID, string(entity.BookingStatusPending)); err != nil {
				s.log.Warn("Failed to publish booking cancelled event", zap.Error(err))
			}
		}
		s.log.Info("Checkout session failed, pending booking removed",
			zap.String("booking_id", booking.ID.String()),
			zap.String("session_id", req.SessionID),
		)
		return nil, fmt.Errorf("%w: session %s payment failed", ErrPaymentInvalid, req.SessionID)
	}

	// Webhook redelivery: the booking is already settled, acknowledge
	// without confirming again or logging a second payment.
	if booking.Status != entity.BookingStatusPending {
		s.log.Info("Confirm webhook redelivered, booking already settled",
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
		)
		return response.BookingToResponse(booking), nil
	}

	status := entity.BookingStatusPaid
	if req.DepositOnly {
		status = entity.BookingStatusDeposit
	}

	// Confirm clears expire_at so the reaper can never remove it
	if err := s.repo.Booking.Confirm(ctx, booking.ID, status, &req.PaymentIntentID); err != nil {
		return nil, err
	}

	booking.Status = status
	booking.ExpireAt = nil
	booking.PaymentIntentID = &req.PaymentIntentID
	booking.UpdatedAt = time.Now()

	amount := booking.Price
	if req.DepositOnly {
		if listing, err := s.repo.Listing.FindByID(ctx, booking.ListingID); err == nil && listing != nil {
			amount = listing.Deposit
		}
	}

	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		BookingID: booking.ID,
		Type:      entity.PaymentTypeCard,
		Amount:    amount,
		Reference: &req.PaymentIntentID,
	}
	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to log card payment",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	if err := s.publisher.PublishBookingEvent(events.EventBookingConfirmed, booking.ID, string(status)); err != nil {
		s.log.Warn("Failed to publish booking confirmed event", zap.Error(err))
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(status)),
	)

	return response.BookingToResponse(booking), nil
}

func (s *checkoutService) DeleteTempBooking(ctx context.Context, bookingID uuid.UUID, sessionID string) error {
	deleted, err := s.repo.Booking.DeleteTemp(ctx, bookingID, sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: pending booking %s with session %s", ErrNotFound, bookingID.String(), sessionID)
	}

	if err := s.publisher.PublishBookingEvent(events.EventBookingCancelled, bookingID, string(entity.BookingStatusPending)); err != nil {
		s.log.Warn("Failed to publish booking cancelled event", zap.Error(err))
	}

	s.log.Info("Temp booking deleted",
		zap.String("booking_id", bookingID.String()),
		zap.String("session_id", sessionID),
	)

	return nil
}

func (s *checkoutService) ExpirePendingBookings(ctx context.Context) (int, error) {
	ids, err := s.repo.Booking.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		if err := s.publisher.PublishBookingEvent(events.EventBookingExpired, id, string(entity.BookingStatusPending)); err != nil {
			s.log.Warn("Failed to publish booking expired event", zap.Error(err))
		}
	}

	if len(ids) > 0 {
		s.log.Info("Expired pending bookings reaped", zap.Int("count", len(ids)))
	}

	return len(ids), nil
}

// StartReaper runs the passive expiry sweep until ctx is cancelled.
func (s *checkoutService) StartReaper(ctx context.Context) {
	interval := time.Duration(s.config.Checkout.ReaperIntervalSec) * time.Second
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.ExpirePendingBookings(ctx); err != nil {
					s.log.Error("Reaper sweep failed", zap.Error(err))
				}
			}
		}
	}()
}
