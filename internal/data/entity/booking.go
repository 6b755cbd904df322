package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusVoid      BookingStatus = "void"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusDeposit   BookingStatus = "deposit"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusReserved  BookingStatus = "reserved"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusDeleted   BookingStatus = "deleted"
)

// Confirmed reports whether the status is a terminal payment-success state.
func (s BookingStatus) Confirmed() bool {
	return s == BookingStatusPaid || s == BookingStatusReserved || s == BookingStatusDeposit
}

// BookingOptions are the add-on toggles the driver selected at checkout.
// Each one maps to an OptionPricing on the listing.
type BookingOptions struct {
	Cancellation          bool `db:"cancellation"`
	GPS                   bool `db:"gps"`
	HomeDelivery          bool `db:"home_delivery"`
	BabyChair             bool `db:"baby_chair"`
	TheftProtection       bool `db:"theft_protection"`
	CollisionDamageWaiver bool `db:"collision_damage_waiver"`
	FullInsurance         bool `db:"full_insurance"`
	AdditionalDriver      bool `db:"additional_driver"`
}

type Booking struct {
	Base
	OrderID           string        `db:"order_id"`
	ListingID         uuid.UUID     `db:"listing_id"`
	SupplierID        uuid.UUID     `db:"supplier_id"`
	DriverID          uuid.UUID     `db:"driver_id"`
	PickupLocationID  uuid.UUID     `db:"pickup_location_id"`
	DropoffLocationID uuid.UUID     `db:"dropoff_location_id"`
	From              time.Time     `db:"from_date"`
	To                time.Time     `db:"to_date"`
	Status            BookingStatus `db:"status"`
	Options           BookingOptions
	Price             float64    `db:"price"`
	PaymentType       *string    `db:"payment_type"`
	SessionID         *string    `db:"session_id"`
	PaymentIntentID   *string    `db:"payment_intent_id"`
	CustomerID        *string    `db:"customer_id"`
	CancelRequest     bool       `db:"cancel_request"`
	ExpireAt          *time.Time `db:"expire_at"`
}
