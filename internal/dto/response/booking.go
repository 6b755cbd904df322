package response

import (
	"time"

	"car-rental-booking/internal/data/entity"
)

type BookingOptionsResponse struct {
	Cancellation          bool `json:"cancellation"`
	GPS                   bool `json:"gps"`
	HomeDelivery          bool `json:"home_delivery"`
	BabyChair             bool `json:"baby_chair"`
	TheftProtection       bool `json:"theft_protection"`
	CollisionDamageWaiver bool `json:"collision_damage_waiver"`
	FullInsurance         bool `json:"full_insurance"`
	AdditionalDriver      bool `json:"additional_driver"`
}

type BookingResponse struct {
	ID                string                 `json:"id"`
	OrderID           string                 `json:"order_id"`
	ListingID         string                 `json:"listing_id"`
	SupplierID        string                 `json:"supplier_id"`
	DriverID          string                 `json:"driver_id"`
	PickupLocationID  string                 `json:"pickup_location_id"`
	DropoffLocationID string                 `json:"dropoff_location_id"`
	From              time.Time              `json:"from"`
	To                time.Time              `json:"to"`
	Status            entity.BookingStatus   `json:"status"`
	Options           BookingOptionsResponse `json:"options"`
	Price             float64                `json:"price"`
	PaymentType       *string                `json:"payment_type,omitempty"`
	CancelRequest     bool                   `json:"cancel_request"`
	ExpireAt          *time.Time             `json:"expire_at,omitempty"`
	Payments          []PaymentResponse      `json:"payments,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
}

type PaymentResponse struct {
	ID          string             `json:"id"`
	BookingID   string             `json:"booking_id"`
	PaymentType entity.PaymentType `json:"payment_type"`
	Amount      float64            `json:"amount"`
	Reference   *string            `json:"reference,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                booking.ID.String(),
		OrderID:           booking.OrderID,
		ListingID:         booking.ListingID.String(),
		SupplierID:        booking.SupplierID.String(),
		DriverID:          booking.DriverID.String(),
		PickupLocationID:  booking.PickupLocationID.String(),
		DropoffLocationID: booking.DropoffLocationID.String(),
		From:              booking.From,
		To:                booking.To,
		Status:            booking.Status,
		Options: BookingOptionsResponse{
			Cancellation:          booking.Options.Cancellation,
			GPS:                   booking.Options.GPS,
			HomeDelivery:          booking.Options.HomeDelivery,
			BabyChair:             booking.Options.BabyChair,
			TheftProtection:       booking.Options.TheftProtection,
			CollisionDamageWaiver: booking.Options.CollisionDamageWaiver,
			FullInsurance:         booking.Options.FullInsurance,
			AdditionalDriver:      booking.Options.AdditionalDriver,
		},
		Price:         booking.Price,
		PaymentType:   booking.PaymentType,
		CancelRequest: booking.CancelRequest,
		ExpireAt:      booking.ExpireAt,
		CreatedAt:     booking.CreatedAt,
	}
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          payment.ID.String(),
		BookingID:   payment.BookingID.String(),
		PaymentType: payment.Type,
		Amount:      payment.Amount,
		Reference:   payment.Reference,
		CreatedAt:   payment.CreatedAt,
	}
}
