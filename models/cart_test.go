package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestCartAddItem(t *testing.T) {
	p1 := bson.NewObjectID()
	p2 := bson.NewObjectID()

	var cart Cart
	cart.AddItem(p1, 2)
	cart.AddItem(p2, 1)
	cart.AddItem(p1, 3)

	if len(cart.Products) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Products))
	}
	if cart.Products[0].ProductId != p1 || cart.Products[0].Quantity != 5 {
		t.Errorf("expected merged line for p1 with quantity 5, got %+v", cart.Products[0])
	}
	if cart.Products[1].ProductId != p2 || cart.Products[1].Quantity != 1 {
		t.Errorf("expected line for p2 with quantity 1, got %+v", cart.Products[1])
	}
}

func TestCartAddItemClampsQuantity(t *testing.T) {
	p := bson.NewObjectID()
	var cart Cart
	cart.AddItem(p, 0)
	if cart.Products[0].Quantity != 1 {
		t.Errorf("quantity 0 should be treated as 1, got %d", cart.Products[0].Quantity)
	}
	cart.AddItem(p, -5)
	if cart.Products[0].Quantity != 2 {
		t.Errorf("negative quantity should be treated as 1, got %d", cart.Products[0].Quantity)
	}
}

func TestCartSetQuantity(t *testing.T) {
	p := bson.NewObjectID()
	cart := Cart{Products: []CartItem{{ProductId: p, Quantity: 1}}}

	if !cart.SetQuantity(p, 4) {
		t.Fatal("SetQuantity should find the existing line")
	}
	if cart.Products[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", cart.Products[0].Quantity)
	}

	if cart.SetQuantity(bson.NewObjectID(), 2) {
		t.Error("SetQuantity should report a missing product")
	}
	if len(cart.Products) != 1 {
		t.Errorf("SetQuantity must not append lines, got %d", len(cart.Products))
	}
}

func TestCartRemoveItem(t *testing.T) {
	p1 := bson.NewObjectID()
	p2 := bson.NewObjectID()
	cart := Cart{Products: []CartItem{{ProductId: p1, Quantity: 1}, {ProductId: p2, Quantity: 2}}}

	cart.RemoveItem(p1)
	if len(cart.Products) != 1 || cart.Products[0].ProductId != p2 {
		t.Fatalf("expected only p2 to remain, got %+v", cart.Products)
	}

	// removing an absent product is a no-op
	cart.RemoveItem(p1)
	if len(cart.Products) != 1 {
		t.Errorf("removing an absent product must not change the cart, got %+v", cart.Products)
	}
}
