package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/controllers"
	"github.com/little-lemon/little-lemon-api/middleware"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/little-lemon/little-lemon-api/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.InitLogger(cfg.GoEnv)
	defer logger.Sync()

	logger.Info("Starting Little Lemon API server", zap.String("env", cfg.GoEnv))

	if err := config.ConnectDatabase(); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	db := config.GetDB()
	err = db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Category{},
		&models.MenuItem{},
		&models.Cart{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database migration completed")

	// Image storage is optional; catalog endpoints work without it, menu item
	// photos just stay unavailable.
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			logger.Warn("S3 unavailable, image uploads disabled", zap.Error(err))
		} else {
			services.InitImageService(s3Service)
			logger.Info("Image storage initialized", zap.String("bucket", cfg.AWSS3Bucket))
		}
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	logger.Info("Server listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// setupRouter builds the full application router with middleware and routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(config.GetLogger()))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Public catalog reads
		v1.GET("/categories", controllers.ListCategories)
		v1.GET("/categories/:id", controllers.GetCategory)
		v1.GET("/menu-items", controllers.ListMenuItems)
		v1.GET("/menu-items/:id", controllers.GetMenuItem)

		// Everything below requires a valid token
		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			authed.POST("/users", controllers.CreateUser)
			authed.GET("/users/me", controllers.GetMyProfile)
			authed.PATCH("/users/me", controllers.UpdateMyProfile)

			authed.GET("/cart/menu-items", controllers.GetCart)
			authed.POST("/cart/menu-items", controllers.AddToCart)
			authed.DELETE("/cart/menu-items", controllers.ClearCart)

			authed.POST("/orders", controllers.CreateOrder)
			authed.GET("/orders", controllers.ListOrders)
			authed.GET("/orders/:id", controllers.GetOrder)
			authed.PATCH("/orders/:id", controllers.UpdateOrder)

			// Manager-only surface
			managed := authed.Group("")
			managed.Use(middleware.RequireRole(models.RoleManager))
			{
				managed.POST("/categories", controllers.CreateCategory)
				managed.PUT("/categories/:id", controllers.UpdateCategory)
				managed.DELETE("/categories/:id", controllers.DeleteCategory)

				managed.POST("/menu-items", controllers.CreateMenuItem)
				managed.PUT("/menu-items/:id", controllers.UpdateMenuItem)
				managed.PATCH("/menu-items/:id", controllers.PatchMenuItem)
				managed.DELETE("/menu-items/:id", controllers.DeleteMenuItem)

				managed.POST("/menu-items/:id/image", controllers.UploadMenuItemImage)
				managed.DELETE("/menu-items/:id/image", controllers.DeleteMenuItemImage)

				managed.DELETE("/orders/:id", controllers.DeleteOrder)

				managed.GET("/groups/:group/users", controllers.ListGroupMembers)
				managed.POST("/groups/:group/users", controllers.AssignGroupMember)
				managed.DELETE("/groups/:group/users/:id", controllers.RemoveGroupMember)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Little Lemon API is running",
	})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}
