package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/internal/dto/request"
	"car-rental-booking/internal/dto/response"
	"car-rental-booking/pkg/events"
	"car-rental-booking/pkg/invoice"
	"car-rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	ListByDriver(ctx context.Context, driverID uuid.UUID, page, perPage int) (*response.PaginatedResponse[*response.BookingResponse], error)

	// ListBySupplier returns the bookings placed against a supplier's listings.
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, page, perPage int) (*response.PaginatedResponse[*response.BookingResponse], error)

	GetByID(ctx context.Context, requesterID uuid.UUID, requesterRole string, bookingID uuid.UUID) (*response.BookingResponse, error)

	// Cancel removes a pending booking outright; a confirmed booking only
	// gets a cancel request flag for the supplier to act on.
	Cancel(ctx context.Context, requesterID uuid.UUID, bookingID uuid.UUID) error

	// UpdateStatus is the admin path. Moving into a confirmed status
	// clears the expiry so the reaper never touches the booking.
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *request.UpdateBookingStatusRequest) error

	AddPayment(ctx context.Context, bookingID uuid.UUID, req *request.CreatePaymentRequest) (*response.PaymentResponse, error)

	Invoice(ctx context.Context, requesterID uuid.UUID, requesterRole string, bookingID uuid.UUID) ([]byte, error)
}

type bookingService struct {
	repo      *repository.Repository
	publisher events.Publisher
	config    *utils.Config
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	publisher events.Publisher,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		config:    config,
		log:       log,
	}
}

func (s *bookingService) ListByDriver(ctx context.Context, driverID uuid.UUID, page, perPage int) (*response.PaginatedResponse[*response.BookingResponse], error) {
	offset := utils.CalculateOffset(page, perPage)

	bookings, err := s.repo.Booking.FindByDriverID(ctx, driverID, perPage, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	items := make([]*response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, response.BookingToResponse(booking))
	}

	return response.NewPaginatedResponse(items, page, perPage, total), nil
}

func (s *bookingService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, page, perPage int) (*response.PaginatedResponse[*response.BookingResponse], error) {
	offset := utils.CalculateOffset(page, perPage)

	bookings, err := s.repo.Booking.FindBySupplierID(ctx, supplierID, perPage, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountBySupplierID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	items := make([]*response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, response.BookingToResponse(booking))
	}

	return response.NewPaginatedResponse(items, page, perPage, total), nil
}

// canViewBooking: the driver sees their own bookings, the supplier sees
// bookings on their listings, admins see everything.
func canViewBooking(booking *entity.Booking, requesterID uuid.UUID, role string) bool {
	switch role {
	case string(entity.RoleAdmin):
		return true
	case string(entity.RoleSupplier):
		return booking.SupplierID == requesterID
	default:
		return booking.DriverID == requesterID
	}
}

func (s *bookingService) findOwned(ctx context.Context, requesterID uuid.UUID, role string, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || !canViewBooking(booking, requesterID, role) {
		// Not-found for foreign bookings so IDs cannot be probed
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID.String())
	}
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, requesterID uuid.UUID, requesterRole string, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.findOwned(ctx, requesterID, requesterRole, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)

	payments, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	for _, payment := range payments {
		resp.Payments = append(resp.Payments, response.PaymentToResponse(payment))
	}

	return resp, nil
}

func (s *bookingService) Cancel(ctx context.Context, requesterID uuid.UUID, bookingID uuid.UUID) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil || booking.DriverID != requesterID {
		return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID.String())
	}

	switch {
	case booking.Status == entity.BookingStatusPending:
		if err := s.repo.Booking.Delete(ctx, bookingID); err != nil {
			return err
		}
	case booking.Status.Confirmed():
		if err := s.repo.Booking.SetCancelRequest(ctx, bookingID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: booking %s cannot be cancelled in status %s",
			ErrInvalidInterval, bookingID.String(), string(booking.Status))
	}

	if err := s.publisher.PublishBookingEvent(events.EventBookingCancelled, bookingID, string(booking.Status)); err != nil {
		s.log.Warn("Failed to publish booking cancelled event", zap.Error(err))
	}

	s.log.Info("Booking cancellation processed",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", string(booking.Status)),
	)

	return nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *request.UpdateBookingStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update status validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrInvalidInterval, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID.String())
	}

	status := entity.BookingStatus(req.Status)
	if status.Confirmed() {
		err = s.repo.Booking.Confirm(ctx, bookingID, status, nil)
	} else {
		err = s.repo.Booking.UpdateStatus(ctx, bookingID, status)
	}
	if err != nil {
		return err
	}

	eventType := events.EventBookingConfirmed
	if !status.Confirmed() {
		eventType = events.EventBookingCancelled
	}
	if err := s.publisher.PublishBookingEvent(eventType, bookingID, string(status)); err != nil {
		s.log.Warn("Failed to publish booking status event", zap.Error(err))
	}

	return nil
}

func (s *bookingService) AddPayment(ctx context.Context, bookingID uuid.UUID, req *request.CreatePaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID.String())
	}

	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		BookingID: bookingID,
		Type:      entity.PaymentType(req.PaymentType),
		Amount:    req.Amount,
		Reference: req.Reference,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("Payment logged",
		zap.String("booking_id", bookingID.String()),
		zap.String("payment_type", req.PaymentType),
		zap.Float64("amount", req.Amount),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *bookingService) Invoice(ctx context.Context, requesterID uuid.UUID, requesterRole string, bookingID uuid.UUID) ([]byte, error) {
	booking, err := s.findOwned(ctx, requesterID, requesterRole, bookingID)
	if err != nil {
		return nil, err
	}

	listing, err := s.repo.Listing.FindByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: listing %s", ErrNotFound, booking.ListingID.String())
	}

	tender := entity.PaymentTypeCard
	if booking.PaymentType != nil {
		tender = entity.PaymentType(*booking.PaymentType)
	}

	// Rebuild the breakdown from the listing snapshot; pricing is
	// deterministic so the lines match what was charged.
	quote, err := BuildQuote(listing, booking.From, booking.To, booking.Options, tender)
	if err != nil {
		return nil, err
	}

	lines := make([]invoice.Line, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		lines = append(lines, invoice.Line{Label: line.Label, Amount: line.Amount})
	}

	doc := invoice.Invoice{
		OrderID:  booking.OrderID,
		CarName:  listing.CarName,
		From:     booking.From,
		To:       booking.To,
		Lines:    lines,
		Total:    booking.Price,
		Currency: s.config.Gateway.Currency,
	}

	pdf, err := invoice.Render(doc)
	if err != nil {
		s.log.Error("Failed to render invoice",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("render invoice for %s: %w", booking.OrderID, err)
	}

	return pdf, nil
}
