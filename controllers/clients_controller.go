package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/apsaracreations/apsarabackend/database"
	"github.com/apsaracreations/apsarabackend/dto"
	"github.com/apsaracreations/apsarabackend/models"
	"github.com/apsaracreations/apsarabackend/storage"
	"github.com/apsaracreations/apsarabackend/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// POST /api/clients/add
func AddClient(store storage.ObjectStore, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("clients")

		var body dto.CreateClientDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		image, err := saveSingleImage(c, store, v, "image", "clients")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if image == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and image are required"})
			return
		}

		client := models.Client{
			Id:        bson.NewObjectID(),
			Name:      strings.TrimSpace(body.Name),
			Image:     image,
			CreatedAt: time.Now().UTC(),
		}

		if _, err := col.InsertOne(ctx, client); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "client added", "client": client})
	}
}

// GET /api/clients/get
func GetAllClients() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("clients")

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		clients := make([]models.Client, 0)
		for cursor.Next(ctx) {
			var cl models.Client
			if err := cursor.Decode(&cl); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			clients = append(clients, cl)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, clients)
	}
}

// DELETE /api/clients/delete/:id
func DeleteClient(store storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("clients")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
			return
		}

		var client models.Client
		if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&client); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}

		_ = store.DeleteFiles(ctx, []string{client.Image})

		c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
	}
}
