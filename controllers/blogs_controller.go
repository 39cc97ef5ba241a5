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

// POST /api/blogs/add
func AddBlog(store storage.ObjectStore, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("blogs")

		var body dto.CreateBlogDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		image, err := saveSingleImage(c, store, v, "image", "blogs")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if image == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
			return
		}

		blog := models.Blog{
			Id:          bson.NewObjectID(),
			Image:       image,
			Heading:     strings.TrimSpace(body.Heading),
			Description: body.Description,
			Link:        strings.TrimSpace(body.Link),
			CreatedAt:   time.Now().UTC(),
		}

		if _, err := col.InsertOne(ctx, blog); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "blog added", "blog": blog})
	}
}

// GET /api/blogs/get
func GetAllBlogs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("blogs")

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		blogs := make([]models.Blog, 0)
		for cursor.Next(ctx) {
			var b models.Blog
			if err := cursor.Decode(&b); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			blogs = append(blogs, b)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, blogs)
	}
}

// DELETE /api/blogs/delete/:id
func DeleteBlog(store storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("blogs")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid blog id"})
			return
		}

		var blog models.Blog
		if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&blog); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "blog not found"})
			return
		}

		_ = store.DeleteFiles(ctx, []string{blog.Image})

		c.JSON(http.StatusOK, gin.H{"message": "blog deleted"})
	}
}
