package controllers

import (
	"net/http"
	"time"

	"github.com/apsaracreations/apsarabackend/database"
	"github.com/apsaracreations/apsarabackend/dto"
	"github.com/apsaracreations/apsarabackend/models"
	"github.com/apsaracreations/apsarabackend/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// POST /api/cart/add
// Creates the cart lazily on first add; re-adding a product increments its
// line instead of duplicating it. No check that the product exists or that
// the quantity fits the stock.
func AddToCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cartsCol := database.OpenCollection("carts")

		var body dto.AddToCartDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		productId, err := bson.ObjectIDFromHex(body.ProductId)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		now := time.Now().UTC()

		var cart models.Cart
		err = cartsCol.FindOne(ctx, bson.M{"user": body.UserId}).Decode(&cart)
		if err != nil {
			// only a confirmed miss may create a cart; inserting on a
			// transient read failure would leave two carts for one user
			if !utils.IsNoDocuments(err) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			cart = models.Cart{
				Id:        bson.NewObjectID(),
				UserId:    body.UserId,
				Products:  []models.CartItem{},
				CreatedAt: now,
				UpdatedAt: now,
			}
			cart.AddItem(productId, body.Quantity)
			if _, err := cartsCol.InsertOne(ctx, cart); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "product added to cart", "cart": cart})
			return
		}

		cart.AddItem(productId, body.Quantity)
		_, err = cartsCol.UpdateByID(ctx, cart.Id, bson.M{
			"$set": bson.M{"products": cart.Products, "updatedAt": now},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product added to cart", "cart": cart})
	}
}

// GET /api/cart/get/:userId
// Returns an empty-products shape when no cart exists, never an error. Lines
// are returned with the full product document resolved; a product deleted
// since it was added resolves to null.
func GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cartsCol := database.OpenCollection("carts")
		productsCol := database.OpenCollection("products")

		userId := c.Param("userId")

		var cart models.Cart
		if err := cartsCol.FindOne(ctx, bson.M{"user": userId}).Decode(&cart); err != nil {
			if !utils.IsNoDocuments(err) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"products": []gin.H{}})
			return
		}

		populated := make([]gin.H, 0, len(cart.Products))
		for _, item := range cart.Products {
			entry := gin.H{
				"productId": item.ProductId,
				"quantity":  item.Quantity,
			}
			var product models.Product
			if err := productsCol.FindOne(ctx, bson.M{"_id": item.ProductId}).Decode(&product); err == nil {
				entry["product"] = product
			} else {
				entry["product"] = nil
			}
			populated = append(populated, entry)
		}

		c.JSON(http.StatusOK, gin.H{
			"id":       cart.Id,
			"user":     cart.UserId,
			"products": populated,
		})
	}
}

// PUT /api/cart/update
func UpdateCartQuantity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cartsCol := database.OpenCollection("carts")

		var body dto.UpdateCartQuantityDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		productId, err := bson.ObjectIDFromHex(body.ProductId)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var cart models.Cart
		if err := cartsCol.FindOne(ctx, bson.M{"user": body.UserId}).Decode(&cart); err != nil {
			if !utils.IsNoDocuments(err) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}

		if !cart.SetQuantity(productId, body.Quantity) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found in cart"})
			return
		}

		_, err = cartsCol.UpdateByID(ctx, cart.Id, bson.M{
			"$set": bson.M{"products": cart.Products, "updatedAt": time.Now().UTC()},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "quantity updated", "cart": cart})
	}
}

// DELETE /api/cart/:userId/:productId
// Removing a line that is already gone succeeds and leaves the cart as-is.
func RemoveFromCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		cartsCol := database.OpenCollection("carts")

		userId := c.Param("userId")
		productId, err := bson.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var cart models.Cart
		if err := cartsCol.FindOne(ctx, bson.M{"user": userId}).Decode(&cart); err != nil {
			if !utils.IsNoDocuments(err) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}

		cart.RemoveItem(productId)
		_, err = cartsCol.UpdateByID(ctx, cart.Id, bson.M{
			"$set": bson.M{"products": cart.Products, "updatedAt": time.Now().UTC()},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product removed from cart", "cart": cart})
	}
}
