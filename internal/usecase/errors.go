package usecase

import "errors"

// Service errors the handlers branch on. The checkout UI needs to tell a
// capacity failure apart from a payment failure, so these stay distinct
// sentinels instead of one generic error.
var (
	// Validation failures, rejected before any side effect
	ErrInvalidInterval  = errors.New("rental interval is invalid")
	ErrOptionNotOffered = errors.New("add-on is not offered on this listing")

	// Capacity exhausted between search and checkout
	ErrUnavailable = errors.New("listing is no longer available for the requested dates")

	// Referenced listing, booking or ledger transaction is absent
	ErrNotFound = errors.New("resource not found")

	// Wallet reconciliation rejections
	ErrPaymentInvalid  = errors.New("payment could not be verified")
	ErrTransactionUsed = errors.New("transaction is already used by another booking")

	// Upstream ledger or gateway failed; never retried blindly
	ErrExternalFailure = errors.New("external payment service unavailable")
)
