package request

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=void pending deposit paid reserved cancelled deleted"`
}

type CreatePaymentRequest struct {
	PaymentType string  `json:"payment_type" validate:"required,oneof=cardPayment payLater mobilePayment walletPayment cash pointOfSell"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Reference   *string `json:"reference,omitempty"`
}
