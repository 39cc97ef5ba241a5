package controllers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/apsaracreations/apsarabackend/database"
	"github.com/apsaracreations/apsarabackend/dto"
	"github.com/apsaracreations/apsarabackend/models"
	"github.com/apsaracreations/apsarabackend/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/api/idtoken"
)

// POST /api/users/register
func RegisterUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RegisterUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(body.Email))
		usersCol := database.OpenCollection("users")

		count, err := usersCol.CountDocuments(c.Request.Context(), bson.M{"email": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		now := time.Now().UTC()
		user := models.User{
			ID:           bson.NewObjectID(),
			Name:         strings.TrimSpace(body.Name),
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleCustomer,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if _, err := usersCol.InsertOne(c.Request.Context(), user); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "user registered"})
	}
}

// POST /api/users/login
func LoginUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		usersCol := database.OpenCollection("users")
		email := strings.ToLower(strings.TrimSpace(body.Email))

		var user models.User
		if err := usersCol.FindOne(c.Request.Context(), bson.M{"email": email}).Decode(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
			return
		}
		if user.PasswordHash == "" {
			// Google account, no password set
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
			return
		}
		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
			return
		}

		token, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, string(user.Role), utils.AccessTTL())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "login successful",
			"token":   token,
			"user":    gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
		})
	}
}

// POST /api/users/google
// Verifies a Google ID token and signs the user in, creating the account on
// first login (no password stored for Google accounts).
func GoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.GoogleLoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		payload, err := idtoken.Validate(ctx, body.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "google authentication failed"})
			return
		}

		email, _ := payload.Claims["email"].(string)
		name, _ := payload.Claims["name"].(string)
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "google token missing email"})
			return
		}

		usersCol := database.OpenCollection("users")

		var user models.User
		err = usersCol.FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err != nil {
			// only a confirmed miss may create the account; a transient read
			// failure here would insert a duplicate user
			if !utils.IsNoDocuments(err) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			now := time.Now().UTC()
			user = models.User{
				ID:        bson.NewObjectID(),
				Name:      name,
				Email:     email,
				Role:      models.RoleCustomer,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := usersCol.InsertOne(ctx, user); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		token, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, string(user.Role), utils.AccessTTL())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "google login successful",
			"token":   token,
			"user":    gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
		})
	}
}
