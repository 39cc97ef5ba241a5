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

const maxProductImages = 5

// POST /api/products/add
func AddProduct(store storage.ObjectStore, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		collection := database.OpenCollection("products")
		categoriesCol := database.OpenCollection("categories")

		var body dto.CreateProductDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		categoryId, err := bson.ObjectIDFromHex(body.CategoryId)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		// Category name is denormalized onto the product at write time.
		var category models.Category
		if err := categoriesCol.FindOne(ctx, bson.M{"_id": categoryId}).Decode(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		files := collectImageFiles(c, "images")
		if len(files) < 1 || len(files) > maxProductImages {
			c.JSON(http.StatusBadRequest, gin.H{"error": "images must be 1 to 5"})
			return
		}
		for _, fh := range files {
			if _, err := v.ValidateFile(fh); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		images := make([]string, 0, len(files))
		for _, fh := range files {
			ref, err := store.SaveFile(ctx, "products", fh)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			images = append(images, ref)
		}

		now := time.Now().UTC()
		product := models.Product{
			Id:            bson.NewObjectID(),
			Name:          strings.TrimSpace(body.Name),
			Slug:          utils.GenerateSlug(body.Name),
			Description:   body.Description,
			Price:         body.Price,
			Quantity:      body.Quantity,
			CategoryId:    categoryId,
			CategoryName:  category.Name,
			Points:        utils.SplitCommaList(body.Points),
			MaterialsCare: body.MaterialsCare,
			Dimensions:    body.Dimensions,
			Images:        images,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if _, err := collection.InsertOne(ctx, product); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "product added", "product": product})
	}
}

// GET /api/products/get
func GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), 20)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}
		skip := int64((page - 1) * limit)

		sortParam := strings.TrimSpace(c.Query("sort"))
		sortDoc := bson.D{{Key: "createdAt", Value: -1}}
		switch sortParam {
		case "price_asc":
			sortDoc = bson.D{{Key: "price", Value: 1}}
		case "price_desc":
			sortDoc = bson.D{{Key: "price", Value: -1}}
		case "name":
			sortDoc = bson.D{{Key: "name", Value: 1}}
		}

		productsCol := database.OpenCollection("products")
		categoriesCol := database.OpenCollection("categories")

		filter := bson.M{}

		// Optional category filter by slug; an unknown slug is an empty list,
		// not an error.
		if categorySlug := strings.TrimSpace(c.Query("category")); categorySlug != "" {
			var cat models.Category
			if err := categoriesCol.FindOne(ctx, bson.M{"slug": categorySlug}).Decode(&cat); err != nil {
				c.JSON(http.StatusOK, gin.H{
					"items": []models.Product{},
					"page":  page,
					"limit": limit,
					"total": 0,
				})
				return
			}
			filter["categoryId"] = cat.Id
		}

		findOpts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(sortDoc)

		cursor, err := productsCol.Find(ctx, filter, findOpts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		for cursor.Next(ctx) {
			var p models.Product
			if err := cursor.Decode(&p); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			products = append(products, p)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := productsCol.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": products,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// GET /api/products/get/:id
func GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		collection := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var product models.Product
		if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// PUT /api/products/update/:id
// Fields are coded exactly as on the create path; a new images upload
// replaces the whole set.
func UpdateProduct(store storage.ObjectStore, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		collection := database.OpenCollection("products")
		categoriesCol := database.OpenCollection("categories")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var body dto.UpdateProductDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var product models.Product
		if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		set := bson.M{}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			set["name"] = name
			set["slug"] = utils.GenerateSlug(name)
		}
		if body.Description != nil {
			set["description"] = *body.Description
		}
		if body.Price != nil {
			if *body.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
				return
			}
			set["price"] = *body.Price
		}
		if body.Quantity != nil {
			set["quantity"] = *body.Quantity
		}
		if body.Points != nil {
			set["points"] = utils.SplitCommaList(*body.Points)
		}
		if body.MaterialsCare != nil {
			set["materialsCare"] = *body.MaterialsCare
		}
		if body.Dimensions != nil {
			set["dimensions"] = *body.Dimensions
		}
		if body.CategoryId != nil {
			categoryId, err := bson.ObjectIDFromHex(*body.CategoryId)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
				return
			}
			var category models.Category
			if err := categoriesCol.FindOne(ctx, bson.M{"_id": categoryId}).Decode(&category); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
				return
			}
			set["categoryId"] = categoryId
			set["categoryName"] = category.Name
		}

		var oldImages []string
		if files := collectImageFiles(c, "images"); len(files) > 0 {
			if len(files) > maxProductImages {
				c.JSON(http.StatusBadRequest, gin.H{"error": "images must be 1 to 5"})
				return
			}
			for _, fh := range files {
				if _, err := v.ValidateFile(fh); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
			images := make([]string, 0, len(files))
			for _, fh := range files {
				ref, err := store.SaveFile(ctx, "products", fh)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				images = append(images, ref)
			}
			set["images"] = images
			oldImages = product.Images
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		if _, err := collection.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if len(oldImages) > 0 {
			_ = store.DeleteFiles(ctx, oldImages)
		}

		c.JSON(http.StatusOK, gin.H{"message": "product updated"})
	}
}

// DELETE /api/products/delete/:id
func DeleteProduct(store storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		collection := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var product models.Product
		if err := collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		_ = store.DeleteFiles(ctx, product.Images)

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
