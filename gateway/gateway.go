// Package gateway wraps the Razorpay payment gateway: remote order creation
// before checkout handoff, and local verification of the signature Razorpay
// returns through the client after payment.
package gateway

import "context"

// Order is the remote gateway-side object representing an intended charge.
type Order struct {
	ID       string
	Amount   int64 // minor currency unit (paise)
	Currency string
}

type Gateway interface {
	// CreateOrder registers an intended charge of amount (in the minor
	// currency unit) under the given receipt identifier.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)

	// KeyID is the public key the client needs for the checkout handoff.
	KeyID() string

	// VerifySignature reports whether the client-supplied signature matches
	// the locally recomputed HMAC for this order/payment pair.
	VerifySignature(orderID, paymentID, signature string) bool
}
