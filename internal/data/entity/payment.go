package entity

import (
	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentTypeCard        PaymentType = "cardPayment"
	PaymentTypePayLater    PaymentType = "payLater"
	PaymentTypeMobile      PaymentType = "mobilePayment"
	PaymentTypeWallet      PaymentType = "walletPayment"
	PaymentTypeCash        PaymentType = "cash"
	PaymentTypePointOfSell PaymentType = "pointOfSell"
)

// Payment is one logged tender against a booking. A booking may carry
// several, e.g. a deposit followed by the balance.
type Payment struct {
	BaseSimple
	BookingID uuid.UUID   `db:"booking_id"`
	Type      PaymentType `db:"payment_type"`
	Amount    float64     `db:"amount"`
	Reference *string     `db:"reference"`
}
