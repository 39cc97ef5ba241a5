package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/apsaracreations/apsarabackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type memOrders struct {
	byGatewayId map[string]*models.Order
}

func (m *memOrders) MarkPaid(_ context.Context, gatewayOrderId, paymentId, signature string, now time.Time) (*models.Order, error) {
	order, ok := m.byGatewayId[gatewayOrderId]
	if !ok || order.Status != models.OrderStatusPending {
		return nil, nil
	}
	order.Status = models.OrderStatusPaid
	order.RazorpayPaymentId = paymentId
	order.RazorpaySignature = signature
	order.UpdatedAt = now
	return order, nil
}

func (m *memOrders) Exists(_ context.Context, gatewayOrderId string) (bool, error) {
	_, ok := m.byGatewayId[gatewayOrderId]
	return ok, nil
}

type memProducts struct {
	stock map[bson.ObjectID]int
	fail  error
}

func (m *memProducts) DecrementStock(_ context.Context, productId bson.ObjectID, quantity int) error {
	if m.fail != nil {
		return m.fail
	}
	m.stock[productId] -= quantity
	return nil
}

type memCarts struct {
	carts   map[string]bool
	deletes int
}

func (m *memCarts) DeleteByUser(_ context.Context, userId string) error {
	delete(m.carts, userId)
	m.deletes++
	return nil
}

func fixture(stockA, stockB int) (*memOrders, *memProducts, *memCarts, bson.ObjectID, bson.ObjectID) {
	a := bson.NewObjectID()
	b := bson.NewObjectID()
	orders := &memOrders{byGatewayId: map[string]*models.Order{
		"order_rp1": {
			UserId: "user-1",
			Products: []models.OrderProduct{
				{ProductId: a, Name: "vase", Price: 500, Quantity: 2},
				{ProductId: b, Name: "lamp", Price: 900, Quantity: 1},
			},
			RazorpayOrderId: "order_rp1",
			Status:          models.OrderStatusPending,
		},
	}}
	products := &memProducts{stock: map[bson.ObjectID]int{a: stockA, b: stockB}}
	carts := &memCarts{carts: map[string]bool{"user-1": true}}
	return orders, products, carts, a, b
}

func TestCompletePayment(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	orders, products, carts, a, b := fixture(10, 5)

	already, err := CompletePayment(ctx, orders, products, carts, "order_rp1", "pay_1", "sig_1", now)
	if err != nil {
		t.Fatal(err)
	}
	if already {
		t.Fatal("first completion reported as already verified")
	}

	order := orders.byGatewayId["order_rp1"]
	if order.Status != models.OrderStatusPaid {
		t.Errorf("status = %s, want paid", order.Status)
	}
	if order.RazorpayPaymentId != "pay_1" || order.RazorpaySignature != "sig_1" {
		t.Errorf("payment id/signature not recorded: %+v", order)
	}
	if products.stock[a] != 8 || products.stock[b] != 4 {
		t.Errorf("stock = %d/%d, want 8/4", products.stock[a], products.stock[b])
	}
	if carts.carts["user-1"] {
		t.Error("cart should be deleted after completion")
	}
}

func TestCompletePaymentSecondCallIsNoOp(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	orders, products, carts, a, b := fixture(10, 5)

	if _, err := CompletePayment(ctx, orders, products, carts, "order_rp1", "pay_1", "sig_1", now); err != nil {
		t.Fatal(err)
	}
	already, err := CompletePayment(ctx, orders, products, carts, "order_rp1", "pay_1", "sig_1", now)
	if err != nil {
		t.Fatal(err)
	}
	if !already {
		t.Fatal("repeat completion should report already verified")
	}

	// the repeat must not decrement stock or delete a cart again
	if products.stock[a] != 8 || products.stock[b] != 4 {
		t.Errorf("stock decremented twice: %d/%d, want 8/4", products.stock[a], products.stock[b])
	}
	if carts.deletes != 1 {
		t.Errorf("cart deleted %d times, want 1", carts.deletes)
	}
}

func TestCompletePaymentUnknownOrder(t *testing.T) {
	ctx := context.Background()

	orders, products, carts, a, _ := fixture(10, 5)

	_, err := CompletePayment(ctx, orders, products, carts, "order_unknown", "pay_1", "sig_1", time.Now().UTC())
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
	if products.stock[a] != 10 {
		t.Errorf("stock changed for an unknown order: %d", products.stock[a])
	}
	if carts.deletes != 0 {
		t.Errorf("cart deleted for an unknown order")
	}
}

func TestCompletePaymentStockErrorPropagates(t *testing.T) {
	ctx := context.Background()

	orders, products, carts, _, _ := fixture(10, 5)
	products.fail = errors.New("write conflict")

	_, err := CompletePayment(ctx, orders, products, carts, "order_rp1", "pay_1", "sig_1", time.Now().UTC())
	if err == nil {
		t.Fatal("decrement failure swallowed")
	}
	// the caller's transaction aborts on error; the cart delete after the
	// failing decrement must not have run
	if carts.deletes != 0 {
		t.Errorf("cart deleted despite a failed decrement")
	}
}
