package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/apsaracreations/apsarabackend/controllers"
	"github.com/apsaracreations/apsarabackend/database"
	"github.com/apsaracreations/apsarabackend/gateway"
	"github.com/apsaracreations/apsarabackend/middleware"
	"github.com/apsaracreations/apsarabackend/storage"
	"github.com/apsaracreations/apsarabackend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	// seeding admin user
	ctx := context.Background()
	usersCol := database.OpenCollection("users")
	if err := utils.SeedAdminUser(ctx, usersCol); err != nil {
		log.Fatal(err)
	}

	store, err := storage.FromEnv(ctx)
	if err != nil {
		log.Fatal(err)
	}

	gw, err := gateway.NewRazorpayFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	r := gin.New()
	v := utils.NewImageValidator()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			// empty ALLOWED_ORIGINS means allow everything (dev mode)
			return len(allowedOrigins) == 0 || allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// uploaded assets are referenced by /uploads-relative paths
	if ds, ok := store.(*storage.DiskStore); ok {
		r.Static("/uploads", ds.Root)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/admin/login", controllers.AdminLogin())
	r.POST("/auth/refresh", controllers.Refresh())
	r.POST("/auth/logout", controllers.Logout())

	api := r.Group("/api")
	{
		api.POST("/users/register", controllers.RegisterUser())
		api.POST("/users/login", controllers.LoginUser())
		api.POST("/users/google", controllers.GoogleLogin())

		api.GET("/categories/get", controllers.GetCategories())
		api.GET("/categories/get/:id", controllers.GetCategory())
		api.GET("/products/get", controllers.GetProducts())
		api.GET("/products/get/:id", controllers.GetProduct())

		api.POST("/cart/add", controllers.AddToCart())
		api.GET("/cart/get/:userId", controllers.GetCart())
		api.PUT("/cart/update", controllers.UpdateCartQuantity())
		api.DELETE("/cart/:userId/:productId", controllers.RemoveFromCart())

		api.POST("/payment/create-order", controllers.CreateOrder(gw))
		api.POST("/payment/verify-payment", controllers.VerifyPayment(gw))
		api.GET("/payment/orders/user/:userId", controllers.GetOrdersByUser())

		api.GET("/blogs/get", controllers.GetAllBlogs())
		api.GET("/clients/get", controllers.GetAllClients())
		api.POST("/reviews/add", controllers.AddReview())
		api.GET("/reviews/all", controllers.GetAllReviews())
	}

	admin := r.Group("/api")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.POST("/categories/add", controllers.AddCategory(store, v))
		admin.PUT("/categories/update/:id", controllers.UpdateCategory(store, v))
		admin.DELETE("/categories/delete/:id", controllers.DeleteCategory(store))

		admin.POST("/products/add", controllers.AddProduct(store, v))
		admin.PUT("/products/update/:id", controllers.UpdateProduct(store, v))
		admin.DELETE("/products/delete/:id", controllers.DeleteProduct(store))

		admin.GET("/payment/orders", controllers.GetAllOrders())
		admin.PUT("/payment/orders/:orderId/shipping", controllers.UpdateOrderShipping())

		admin.POST("/blogs/add", controllers.AddBlog(store, v))
		admin.DELETE("/blogs/delete/:id", controllers.DeleteBlog(store))

		admin.POST("/clients/add", controllers.AddClient(store, v))
		admin.DELETE("/clients/delete/:id", controllers.DeleteClient(store))

		admin.DELETE("/reviews/delete/:id", controllers.DeleteReview())
	}

	host := os.Getenv("HOST")
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(host + ":" + port); err != nil {
		log.Fatal(err)
	}
}
