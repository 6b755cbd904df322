package response

import (
	"time"

	"car-rental-booking/internal/data/entity"
)

// CheckoutResponse is returned from checkout submission. SessionID and
// ClientSecret are only present for card payments, where the client must
// complete the gateway flow before the booking is confirmed.
type CheckoutResponse struct {
	BookingID    string               `json:"booking_id"`
	OrderID      string               `json:"order_id"`
	Status       entity.BookingStatus `json:"status"`
	Price        float64              `json:"price"`
	SessionID    string               `json:"session_id,omitempty"`
	ClientSecret string               `json:"client_secret,omitempty"`
	ExpireAt     *time.Time           `json:"expire_at,omitempty"`
}

type AvailabilityResponse struct {
	ListingID string `json:"listing_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Available bool   `json:"available"`
}
