package controllers

import (
	"mime/multipart"
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

// saveSingleImage validates and stores the one file posted under the given
// field name. Returns "" when the field is absent.
func saveSingleImage(c *gin.Context, store storage.ObjectStore, v *utils.FileValidator, field, folder string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	if _, err := v.ValidateFile(fh); err != nil {
		return "", err
	}
	return store.SaveFile(c.Request.Context(), folder, fh)
}

func collectImageFiles(c *gin.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}

// POST /api/categories/add
func AddCategory(store storage.ObjectStore, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("categories")

		var body dto.CreateCategoryDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		bannerImage, err := saveSingleImage(c, store, v, "bannerImage", "categories")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		headingImage, err := saveSingleImage(c, store, v, "headingImage", "categories")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		doc := models.Category{
			Id:            bson.NewObjectID(),
			Name:          strings.TrimSpace(body.Name),
			Slug:          utils.GenerateSlug(body.Name),
			BannerImage:   bannerImage,
			HeadingImage:  headingImage,
			BannerHeading: strings.TrimSpace(body.BannerHeading),
			Filters:       utils.SplitCommaList(body.Filters),
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if _, err := col.InsertOne(ctx, doc); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "category created", "category": doc})
	}
}

// GET /api/categories/get
func GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("categories")

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), 50)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 50
		}
		if limit > 200 {
			limit = 200
		}
		skip := int64((page - 1) * limit)

		q := strings.TrimSpace(c.Query("q"))
		filter := bson.M{}
		if q != "" {
			filter["name"] = bson.M{"$regex": q, "$options": "i"}
		}

		opts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.Category, 0)
		for cursor.Next(ctx) {
			var cat models.Category
			if err := cursor.Decode(&cat); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, cat)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// GET /api/categories/get/:id — single category plus its products.
func GetCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("categories")
		productsCol := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		var cat models.Category
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&cat); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := productsCol.Find(ctx, bson.M{"categoryId": id}, opts)
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

		c.JSON(http.StatusOK, gin.H{"category": cat, "products": products})
	}
}

// PUT /api/categories/update/:id
// Renaming a category does not rewrite the categoryName already denormalized
// onto its products; those keep the stale name until individually re-saved.
func UpdateCategory(store storage.ObjectStore, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("categories")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		var body dto.UpdateCategoryDTO
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var current models.Category
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&current); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
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
		if body.BannerHeading != nil {
			set["bannerHeading"] = strings.TrimSpace(*body.BannerHeading)
		}
		if body.Filters != nil {
			set["filters"] = utils.SplitCommaList(*body.Filters)
		}

		var replaced []string
		if img, err := saveSingleImage(c, store, v, "bannerImage", "categories"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		} else if img != "" {
			set["bannerImage"] = img
			replaced = append(replaced, current.BannerImage)
		}
		if img, err := saveSingleImage(c, store, v, "headingImage", "categories"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		} else if img != "" {
			set["headingImage"] = img
			replaced = append(replaced, current.HeadingImage)
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		if _, err := col.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// old images are orphaned once the document points elsewhere
		if len(replaced) > 0 {
			_ = store.DeleteFiles(ctx, replaced)
		}

		c.JSON(http.StatusOK, gin.H{"message": "category updated"})
	}
}

// DELETE /api/categories/delete/:id
// Cascades to every product in the category. The product bulk delete is a
// second write, not transactional with the category delete.
func DeleteCategory(store storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("categories")
		productsCol := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		var cat models.Category
		if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&cat); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}

		if _, err := productsCol.DeleteMany(ctx, bson.M{"categoryId": id}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		_ = store.DeleteFiles(ctx, []string{cat.BannerImage, cat.HeadingImage})

		c.JSON(http.StatusOK, gin.H{"message": "category and its products deleted"})
	}
}
