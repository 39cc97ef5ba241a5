package gateway

import (
	"context"
	"fmt"
	"os"

	razorpay "github.com/razorpay/razorpay-go"
)

type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
	secret string
}

// NewRazorpayFromEnv builds the gateway client from RAZORPAY_KEY_ID and
// RAZORPAY_SECRET_KEY.
func NewRazorpayFromEnv() (*RazorpayGateway, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	secret := os.Getenv("RAZORPAY_SECRET_KEY")
	if keyID == "" || secret == "" {
		return nil, fmt.Errorf("missing RAZORPAY_KEY_ID or RAZORPAY_SECRET_KEY env vars")
	}
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, secret),
		keyID:  keyID,
		secret: secret,
	}, nil
}

func (g *RazorpayGateway) KeyID() string { return g.keyID }

// CreateOrder registers the charge with Razorpay. The SDK does not take a
// context; the ctx parameter is kept for the interface.
func (g *RazorpayGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: response missing id")
	}

	out := &Order{ID: id, Amount: amount, Currency: currency}
	if a, ok := body["amount"].(float64); ok {
		out.Amount = int64(a)
	}
	if c, ok := body["currency"].(string); ok && c != "" {
		out.Currency = c
	}
	return out, nil
}

func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return SignatureMatches(orderID, paymentID, signature, g.secret)
}
