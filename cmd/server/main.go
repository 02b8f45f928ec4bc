package main

import (
	"log"
	"restaurant_pos/internal/config"
	"restaurant_pos/internal/database"
	"restaurant_pos/internal/handlers"
	"restaurant_pos/internal/middleware"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/notifications"
	"restaurant_pos/internal/redis"
	"restaurant_pos/internal/repository"
	"restaurant_pos/internal/services"
	"restaurant_pos/pkg/token"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.Environment == "production" && cfg.JWTSecret == "changeme" {
		log.Fatal("JWT_SECRET is not set or is using the default value")
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis; the API degrades gracefully without it
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Redis unavailable, caching and rate limiting disabled: %v", err)
		redisClient = nil
	}

	// Live event fan-out
	hub := notifications.NewHub()

	// Token manager
	tokens := token.NewManager(cfg.JWTSecret)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	estRepo := repository.NewEstablishmentRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	estService := services.NewEstablishmentService(estRepo)
	orderService := services.NewOrderService(orderRepo, orderItemRepo, tableRepo, estRepo, hub)
	tableService := services.NewTableService(tableRepo, orderRepo, estRepo, hub)
	menuService := services.NewMenuService(productRepo, categoryRepo, redisClient, time.Duration(cfg.CacheTTL)*time.Second)
	feedbackService := services.NewFeedbackService(feedbackRepo, hub)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	userHandler := handlers.NewUserHandler(userService)
	estHandler := handlers.NewEstablishmentHandler(estService)
	guard := middleware.NewOwnershipGuard(db)
	orderHandler := handlers.NewOrderHandler(orderService, guard)
	tableHandler := handlers.NewTableHandler(tableService, guard)
	menuHandler := handlers.NewMenuHandler(menuService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	notificationHandler := handlers.NewNotificationHandler(hub)

	// Setup routes
	router := gin.Default()
	router.Use(corsMiddleware(cfg))

	// Resolve tenant early for all requests (header/query/subdomain/user)
	router.Use(middleware.ResolveTenant(estRepo, tokens, cfg.SubdomainTenancy))

	authenticated := middleware.Authenticate(tokens, userRepo)
	staff := middleware.Authorize(models.RoleAdmin, models.RoleWaiter)
	admin := middleware.Authorize(models.RoleAdmin)
	generalLimit := middleware.RateLimit(redisClient, "general", cfg.GeneralRateLimit, time.Minute)
	authLimit := middleware.RateLimit(redisClient, "auth", cfg.AuthRateLimit, time.Minute)

	api := router.Group("/api", generalLimit)
	{
		auth := api.Group("/auth", authLimit)
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		api.GET("/products", menuHandler.ListProducts)
		api.POST("/products", authenticated, admin, middleware.RequireEstablishment(), menuHandler.CreateProduct)
		api.PUT("/products/:id", authenticated, admin, middleware.RequireOwnership(guard, "product", "id"), menuHandler.UpdateProduct)
		api.DELETE("/products/:id", authenticated, admin, middleware.RequireOwnership(guard, "product", "id"), menuHandler.DeleteProduct)

		api.GET("/categories", menuHandler.ListCategories)
		api.POST("/categories", authenticated, admin, middleware.RequireEstablishment(), menuHandler.CreateCategory)

		api.GET("/tables", tableHandler.GetTables)
		api.POST("/tables", authenticated, admin, middleware.RequireEstablishment(), tableHandler.CreateTable)
		api.PUT("/tables/:id", middleware.RequireEstablishment(), middleware.RequireOwnership(guard, "table", "id"), tableHandler.UpdateTable)
		api.POST("/tables/status", middleware.RequireEstablishment(), tableHandler.SetStatus)

		api.GET("/orders", orderHandler.GetOrders)
		api.GET("/orders/closed-today", authenticated, admin, middleware.RequireEstablishment(), orderHandler.ClosedToday)
		api.POST("/orders", middleware.RequireEstablishment(), orderHandler.CreateOrder)
		api.PUT("/orders/:id/status", authenticated, staff, middleware.RequireOwnership(guard, "order", "id"), orderHandler.UpdateStatus)
		api.PUT("/orders/:id/items/:itemId/status", authenticated, staff, middleware.RequireOwnership(guard, "order", "id"), orderHandler.UpdateItemStatus)

		api.GET("/establishment", estHandler.Get)
		api.POST("/establishment", authenticated, admin, estHandler.Create)
		api.PUT("/establishment/:id", authenticated, admin, estHandler.Update)

		api.GET("/feedbacks", authenticated, staff, feedbackHandler.GetAll)
		api.POST("/feedbacks", middleware.RequireEstablishment(), feedbackHandler.Create)

		api.GET("/users", authenticated, admin, userHandler.GetUsers)
		api.POST("/users", authenticated, admin, middleware.RequireEstablishment(), userHandler.CreateUser)

		// Notifications stream (SSE)
		api.GET("/notifications/stream", notificationHandler.Stream)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.TenantHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.FrontendOrigin != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.FrontendOrigin, ",")
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	return cors.New(corsConfig)
}
