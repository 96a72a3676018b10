package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"home-horizon/internal/auth"
	"home-horizon/internal/config"
	"home-horizon/internal/database"
	"home-horizon/internal/handlers"
	"home-horizon/internal/media"
	"home-horizon/internal/payments"
	"home-horizon/internal/ratelimit"
	"home-horizon/internal/search"
	"home-horizon/internal/workflow"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Secrets come from the environment when not set in the config file
	appConfig.Mongo.URI = getEnvOrConfig(appConfig.Mongo.URI, "MONGODB_URI", "mongodb://localhost:27017")
	appConfig.Auth.JWTSecret = getEnvOrConfig(appConfig.Auth.JWTSecret, "JWT_SECRET", "")
	appConfig.Stripe.SecretKey = getEnvOrConfig(appConfig.Stripe.SecretKey, "STRIPE_SECRET_KEY", "")
	appConfig.Cloudinary.CloudName = getEnvOrConfig(appConfig.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME", "")
	appConfig.Cloudinary.APIKey = getEnvOrConfig(appConfig.Cloudinary.APIKey, "CLOUDINARY_API_KEY", "")
	appConfig.Cloudinary.APISecret = getEnvOrConfig(appConfig.Cloudinary.APISecret, "CLOUDINARY_API_SECRET", "")

	if appConfig.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Connect to the record store
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := database.Connect(ctx, appConfig.Mongo)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			log.Printf("Warning: Failed to close MongoDB connection: %v", err)
		}
	}()
	log.Printf("Connected to MongoDB database %s", appConfig.Mongo.Database)

	// Initialize Meilisearch using config
	var searchClient *search.SearchClient
	if appConfig.Search.Enabled {
		meilisearchHost := getEnvOrConfig(appConfig.Search.Meilisearch.Host, "MEILISEARCH_HOST", "http://localhost:7700")
		meilisearchKey := getEnvOrConfig(appConfig.Search.Meilisearch.APIKey, "MEILISEARCH_KEY", "")

		searchClient = search.NewSearchClient(meilisearchHost, meilisearchKey)
		if err := searchClient.InitIndex(); err != nil {
			log.Printf("Warning: Failed to initialize search index: %v", err)
		}
	} else {
		log.Println("Search is disabled")
	}

	// Media backend is optional
	var mediaStore media.Store
	if appConfig.Cloudinary.CloudName != "" {
		cld, err := media.NewCloudinaryStore(appConfig.Cloudinary)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
		} else {
			mediaStore = cld
		}
	} else {
		log.Println("Media uploads are disabled (no Cloudinary credentials)")
	}

	// Payment gateway
	if appConfig.Stripe.SecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY is not set, checkout will fail")
	}
	gateway := payments.NewStripeGateway(appConfig.Stripe)

	// Offer workflow engine
	engine := workflow.NewEngine(store.Offers, store.Properties, store.Wishlist, gateway, store,
		workflow.CheckoutConfig{
			Currency:   appConfig.Stripe.Currency,
			SuccessURL: appConfig.Stripe.SuccessURL,
			CancelURL:  appConfig.Stripe.CancelURL,
		})

	// Rate limiter guards the payment and upload routes
	rateLimiter := ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)
	log.Printf("Rate limiter initialized: %d req/min, %d req/hour (enabled: %v)",
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)

	verifier := auth.NewJWTVerifier(appConfig.Auth.JWTSecret)

	// Handlers
	tokensHandler := handlers.NewTokensHandler(appConfig.Auth.JWTSecret, appConfig.Auth.GetTokenTTL())
	usersHandler := handlers.NewUsersHandler(store.Users)
	propertiesHandler := handlers.NewPropertiesHandler(store.Properties, searchClient)
	adminHandler := handlers.NewAdminHandler(store.Users, store.Properties, store.Reviews, searchClient, appConfig.Seed)
	wishlistHandler := handlers.NewWishlistHandler(store.Wishlist, store.Properties)
	reviewsHandler := handlers.NewReviewsHandler(store.Reviews)
	offersHandler := handlers.NewOffersHandler(engine, store.Offers, store.Properties)
	paymentsHandler := handlers.NewPaymentsHandler(engine)
	uploadsHandler := handlers.NewUploadsHandler(mediaStore)

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Liveness
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Home Horizon server is running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Public routes
	r.POST("/jwt", tokensHandler.Issue)
	r.POST("/users", usersHandler.Create)
	r.GET("/properties/verified", propertiesHandler.ListVerified)
	r.GET("/advertised-properties", propertiesHandler.ListAdvertised)
	r.GET("/properties/search", propertiesHandler.Search)

	// Authenticated routes
	authed := r.Group("/", auth.RequireAuth(verifier))
	{
		authed.GET("/users/role", usersHandler.Role)
		authed.GET("/users/:uid", usersHandler.Get)
		authed.PUT("/users/:uid", usersHandler.Update)

		authed.GET("/properties/:id", propertiesHandler.Get)
		authed.GET("/reviews/:propertyId", reviewsHandler.ListByProperty)
		authed.POST("/reviews", reviewsHandler.Create)
		authed.GET("/my-reviews", reviewsHandler.ListMine)
		authed.DELETE("/reviews/:id", reviewsHandler.Delete)

		authed.POST("/wishlist", wishlistHandler.Add)
		authed.GET("/wishlist", wishlistHandler.List)
		authed.GET("/wishlist/check", wishlistHandler.Check)
		authed.DELETE("/wishlist", wishlistHandler.Remove)
		authed.POST("/wishlist/properties", wishlistHandler.ResolveProperties)

		authed.GET("/offers/user", offersHandler.GetUserOffer)
		authed.POST("/create-checkout-session", rateLimiter.Middleware(), paymentsHandler.CreateCheckoutSession)
		authed.POST("/payments/verify", rateLimiter.Middleware(), paymentsHandler.VerifyPayment)
	}

	// Buyer routes
	buyer := r.Group("/", auth.RequireAuth(verifier), auth.RequireRole(store.Users, "user"))
	{
		buyer.POST("/offers", offersHandler.Create)
		buyer.GET("/offers", offersHandler.ListMine)
	}

	// Agent routes
	agent := r.Group("/", auth.RequireAuth(verifier), auth.RequireRole(store.Users, "agent", "super-admin"))
	{
		agent.POST("/properties", propertiesHandler.Create)
		agent.GET("/my-properties", propertiesHandler.ListMine)
		agent.PUT("/properties/:id", propertiesHandler.Update)
		agent.DELETE("/properties/:id", propertiesHandler.Delete)

		agent.GET("/agent/offers", offersHandler.ListRequested)
		agent.PATCH("/agent/offers/:id/status", offersHandler.Decide)
		agent.GET("/agent/sold-properties", offersHandler.SoldProperties)

		agent.POST("/api/v1/upload", rateLimiter.Middleware(), uploadsHandler.Upload)
		agent.POST("/api/v1/delete-image", rateLimiter.Middleware(), uploadsHandler.Delete)
	}

	// Admin routes
	admin := r.Group("/admin", auth.RequireAuth(verifier), auth.RequireRole(store.Users, "admin", "super-admin"))
	{
		admin.GET("/properties", adminHandler.ListProperties)
		admin.GET("/verified-properties", adminHandler.ListVerifiedProperties)
		admin.PATCH("/properties/verify/:id", adminHandler.VerifyProperty)
		admin.PATCH("/properties/reject/:id", adminHandler.RejectProperty)

		admin.GET("/users", adminHandler.ListUsers)
		admin.PATCH("/users/:id/role", adminHandler.SetUserRole)
		admin.PATCH("/users/:id/fraud", adminHandler.MarkFraud)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/reviews", adminHandler.ListReviews)
		admin.DELETE("/reviews/:id", reviewsHandler.AdminDelete)

		admin.POST("/seed-properties", adminHandler.SeedProperties)
		admin.PATCH("/advertise-property/:id", adminHandler.AdvertiseProperty)
		admin.PATCH("/unadvertise-property/:id", adminHandler.UnadvertiseProperty)
		admin.GET("/advertise-stats", adminHandler.AdvertiseStats)
	}

	// Rate limiter stats endpoint
	r.GET("/api/ratelimit/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, rateLimiter.GetStats())
	})

	port := getEnvOrConfig(appConfig.Server.Port, "PORT", "5000")
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}
