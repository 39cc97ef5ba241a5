package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CartItem struct {
	ProductId bson.ObjectID `bson:"productId" json:"productId"`
	Quantity  int           `bson:"quantity" json:"quantity"`
}

type Cart struct {
	Id        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserId    string        `bson:"user" json:"user"`
	Products  []CartItem    `bson:"products" json:"products"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// AddItem merges quantity into an existing line for the product, or appends
// a new line. A cart never holds two lines for the same product.
func (cart *Cart) AddItem(productId bson.ObjectID, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range cart.Products {
		if cart.Products[i].ProductId == productId {
			cart.Products[i].Quantity += quantity
			return
		}
	}
	cart.Products = append(cart.Products, CartItem{ProductId: productId, Quantity: quantity})
}

// SetQuantity overwrites the quantity of an existing line. Returns false if
// the product has no line in the cart.
func (cart *Cart) SetQuantity(productId bson.ObjectID, quantity int) bool {
	for i := range cart.Products {
		if cart.Products[i].ProductId == productId {
			cart.Products[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveItem filters out the product's line. Removing a product that is not
// in the cart is a no-op, not an error.
func (cart *Cart) RemoveItem(productId bson.ObjectID) {
	kept := make([]CartItem, 0, len(cart.Products))
	for _, item := range cart.Products {
		if item.ProductId != productId {
			kept = append(kept, item)
		}
	}
	cart.Products = kept
}
