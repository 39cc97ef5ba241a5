package controllers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/apsaracreations/apsarabackend/checkout"
	"github.com/apsaracreations/apsarabackend/database"
	"github.com/apsaracreations/apsarabackend/dto"
	"github.com/apsaracreations/apsarabackend/gateway"
	"github.com/apsaracreations/apsarabackend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// POST /api/payment/create-order
// Registers the charge with the gateway first; the local order is written
// only after that succeeds, so a gateway failure leaves nothing behind.
func CreateOrder(gw gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ordersCol := database.OpenCollection("orders")

		var body dto.CreateOrderDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required order fields"})
			return
		}

		products := make([]models.OrderProduct, 0, len(body.Products))
		for _, p := range body.Products {
			productId, err := bson.ObjectIDFromHex(p.ProductId)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
				return
			}
			products = append(products, models.OrderProduct{
				ProductId: productId,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  p.Quantity,
				Image:     p.Image,
			})
		}

		// Rupees to paise.
		amount := int64(math.Round(body.TotalAmount * 100))
		receipt := "rcpt_" + uuid.New().String()

		rpOrder, err := gw.CreateOrder(ctx, amount, "INR", receipt)
		if err != nil {
			log.Println("Razorpay order error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment initialization failed"})
			return
		}

		now := time.Now().UTC()
		order := models.Order{
			Id:       bson.NewObjectID(),
			UserId:   body.UserId,
			Products: products,
			ShippingDetails: models.ShippingDetails{
				FullName: body.ShippingDetails.FullName,
				Email:    body.ShippingDetails.Email,
				Phone:    body.ShippingDetails.Phone,
				Address:  body.ShippingDetails.Address,
				City:     body.ShippingDetails.City,
				State:    body.ShippingDetails.State,
				PinCode:  body.ShippingDetails.PinCode,
			},
			Subtotal:        body.Subtotal,
			ShippingCost:    body.ShippingCost,
			TotalAmount:     body.TotalAmount,
			RazorpayOrderId: rpOrder.ID,
			Status:          models.OrderStatusPending,
			ShippingStatus:  models.ShippingPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if _, err := ordersCol.InsertOne(ctx, order); err != nil {
			log.Println("Order insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment initialization failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"key":             gw.KeyID(),
			"razorpayOrderId": rpOrder.ID,
			"amount":          rpOrder.Amount,
			"currency":        rpOrder.Currency,
			"orderId":         order.Id,
		})
	}
}

// POST /api/payment/verify-payment
// The recomputed HMAC is the single trust boundary: nothing else from the
// client is treated as authoritative for money movement. On a verified
// signature the stock decrement, cart deletion and order update run inside
// one session transaction, and the pending->paid flip doubles as an
// idempotency guard — a repeated call with the same valid payload finds no
// pending order and returns success without touching stock again.
func VerifyPayment(gw gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.VerifyPaymentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !gw.VerifySignature(body.RazorpayOrderId, body.RazorpayPaymentId, body.RazorpaySignature) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment verification failed"})
			return
		}

		session, err := database.Client().StartSession()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment verification failed"})
			return
		}
		defer session.EndSession(ctx)

		alreadyVerified := false

		_, err = session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
			already, err := checkout.CompletePayment(ctx,
				checkout.MongoOrders{Col: database.OpenCollection("orders")},
				checkout.MongoProducts{Col: database.OpenCollection("products")},
				checkout.MongoCarts{Col: database.OpenCollection("carts")},
				body.RazorpayOrderId, body.RazorpayPaymentId, body.RazorpaySignature,
				time.Now().UTC())
			alreadyVerified = already
			return nil, err
		})
		if err != nil {
			if errors.Is(err, checkout.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			log.Println("Payment verify error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment verification failed"})
			return
		}

		if alreadyVerified {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment already verified"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified, stock updated, and cart cleared"})
	}
}

// GET /api/payment/orders — admin list; pending and failed orders are
// invisible here.
func GetAllOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ordersCol := database.OpenCollection("orders")

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := ordersCol.Find(ctx, bson.M{"status": models.OrderStatusPaid}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch paid orders"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		for cursor.Next(ctx) {
			var o models.Order
			if err := cursor.Decode(&o); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			orders = append(orders, o)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "orders": orders})
	}
}

// GET /api/payment/orders/user/:userId
func GetOrdersByUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ordersCol := database.OpenCollection("orders")

		userId := c.Param("userId")

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := ordersCol.Find(ctx, bson.M{"user": userId}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		for cursor.Next(ctx) {
			var o models.Order
			if err := cursor.Decode(&o); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			orders = append(orders, o)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "orders": orders})
	}
}

// PUT /api/payment/orders/:orderId/shipping — admin fulfillment update,
// independent of payment status. Any value may be set in any sequence.
func UpdateOrderShipping() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ordersCol := database.OpenCollection("orders")

		orderId, err := bson.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var body dto.UpdateShippingDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := models.ShippingUpdateFields(models.ShippingStatus(body.Status), body.TrackingId, time.Now().UTC())

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var order models.Order
		err = ordersCol.FindOneAndUpdate(ctx, bson.M{"_id": orderId}, bson.M{"$set": set}, opts).Decode(&order)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update shipping"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
