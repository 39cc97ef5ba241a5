package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/apsaracreations/apsarabackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStore is the order-side surface the payment completion needs.
type OrderStore interface {
	// MarkPaid flips a pending order to paid in one conditional update,
	// recording the gateway payment id and signature. A nil order with a nil
	// error means no pending order matched.
	MarkPaid(ctx context.Context, gatewayOrderId, paymentId, signature string, now time.Time) (*models.Order, error)
	// Exists reports whether any order, in any status, carries the gateway
	// order id.
	Exists(ctx context.Context, gatewayOrderId string) (bool, error)
}

type ProductStore interface {
	DecrementStock(ctx context.Context, productId bson.ObjectID, quantity int) error
}

type CartStore interface {
	DeleteByUser(ctx context.Context, userId string) error
}

// CompletePayment runs the post-verification half of checkout: the
// pending->paid flip, the per-line stock decrement, and the cart deletion.
// The caller has already verified the signature and wraps this in a session
// transaction.
//
// The conditional flip doubles as the idempotency guard: a repeated call for
// an order that is already paid finds no pending order, confirms the order
// exists, and returns alreadyVerified=true without touching stock or cart
// again. Stock is not checked against the ordered quantity and may go
// negative.
func CompletePayment(ctx context.Context, orders OrderStore, products ProductStore, carts CartStore, gatewayOrderId, paymentId, signature string, now time.Time) (alreadyVerified bool, err error) {
	order, err := orders.MarkPaid(ctx, gatewayOrderId, paymentId, signature, now)
	if err != nil {
		return false, err
	}
	if order == nil {
		exists, err := orders.Exists(ctx, gatewayOrderId)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, ErrOrderNotFound
		}
		return true, nil
	}

	for _, item := range order.Products {
		if err := products.DecrementStock(ctx, item.ProductId, item.Quantity); err != nil {
			return false, err
		}
	}

	// the whole cart became this order
	if err := carts.DeleteByUser(ctx, order.UserId); err != nil {
		return false, err
	}

	return false, nil
}
