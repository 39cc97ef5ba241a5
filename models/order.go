package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

type ShippingStatus string

const (
	ShippingPending   ShippingStatus = "Pending"
	ShippingPacked    ShippingStatus = "Packed"
	ShippingShipped   ShippingStatus = "Shipped"
	ShippingDelivered ShippingStatus = "Delivered"
)

// OrderProduct is a snapshot of product fields taken at order-creation time,
// decoupled from later edits to the live Product record.
type OrderProduct struct {
	ProductId bson.ObjectID `bson:"productId" json:"productId"`
	Name      string        `bson:"name" json:"name"`
	Price     float64       `bson:"price" json:"price"`
	Quantity  int           `bson:"quantity" json:"quantity"`
	Image     string        `bson:"image" json:"image"`
}

type ShippingDetails struct {
	FullName string `bson:"fullName" json:"fullName"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone" json:"phone"`
	Address  string `bson:"address" json:"address"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	PinCode  string `bson:"pinCode" json:"pinCode"`
}

type Order struct {
	Id              bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserId          string          `bson:"user" json:"user"`
	Products        []OrderProduct  `bson:"products" json:"products"`
	ShippingDetails ShippingDetails `bson:"shippingDetails" json:"shippingDetails"`
	Subtotal        float64         `bson:"subtotal" json:"subtotal"`
	ShippingCost    float64         `bson:"shippingCost" json:"shippingCost"`
	TotalAmount     float64         `bson:"totalAmount" json:"totalAmount"`

	RazorpayOrderId   string `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentId string `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string `bson:"razorpaySignature,omitempty" json:"razorpaySignature,omitempty"`

	Status         OrderStatus    `bson:"status" json:"status"`
	ShippingStatus ShippingStatus `bson:"shippingStatus" json:"shippingStatus"`
	TrackingId     string         `bson:"trackingId,omitempty" json:"trackingId,omitempty"`
	ShippedAt      *time.Time     `bson:"shippedAt,omitempty" json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time     `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ShippingUpdateFields builds the $set document for a shipping-status change.
// Shipped stamps shippedAt and Delivered stamps deliveredAt; existing stamps
// are never cleared, and no transition table is enforced.
func ShippingUpdateFields(status ShippingStatus, trackingId string, now time.Time) bson.M {
	set := bson.M{
		"shippingStatus": status,
		"trackingId":     trackingId,
		"updatedAt":      now,
	}
	switch strings.ToLower(string(status)) {
	case "shipped":
		set["shippedAt"] = now
	case "delivered":
		set["deliveredAt"] = now
	}
	return set
}
