package request

// BookingOptionsRequest mirrors the add-on toggles a driver can select.
type BookingOptionsRequest struct {
	Cancellation          bool `json:"cancellation"`
	GPS                   bool `json:"gps"`
	HomeDelivery          bool `json:"home_delivery"`
	BabyChair             bool `json:"baby_chair"`
	TheftProtection       bool `json:"theft_protection"`
	CollisionDamageWaiver bool `json:"collision_damage_waiver"`
	FullInsurance         bool `json:"full_insurance"`
	AdditionalDriver      bool `json:"additional_driver"`
}

// WalletPaymentRequest identifies an on-chain transfer claimed as payment.
type WalletPaymentRequest struct {
	Network       string `json:"network" validate:"required,oneof=TRX ETH"`
	TransactionID string `json:"transaction_id" validate:"required,min=16"`
}

type CheckoutRequest struct {
	ListingID         string                `json:"listing_id" validate:"required,uuid4"`
	PickupLocationID  string                `json:"pickup_location_id" validate:"required,uuid4"`
	DropoffLocationID string                `json:"dropoff_location_id" validate:"required,uuid4"`
	From              string                `json:"from" validate:"required"`
	To                string                `json:"to" validate:"required"`
	Options           BookingOptionsRequest `json:"options"`
	PaymentType       string                `json:"payment_type" validate:"required,oneof=cardPayment payLater walletPayment cash pointOfSell"`
	Wallet            *WalletPaymentRequest `json:"wallet,omitempty"`
}

type CheckAvailabilityRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid4"`
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
}

// ConfirmCheckoutRequest is the card gateway's webhook payload.
type ConfirmCheckoutRequest struct {
	SessionID       string `json:"session_id" validate:"required"`
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	Succeeded       bool   `json:"succeeded"`
	DepositOnly     bool   `json:"deposit_only"`
}
