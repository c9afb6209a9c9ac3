package main

import (
	"net/http"

	"inventory-service/internal/handler"
	mid "inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Seed demo data when requested
	if appConfig.SeedDemo {
		if err := database.SeedDemoData(database.GetDB()); err != nil {
			log.Fatal("Failed to seed demo data", zap.Error(err))
		}
		log.Info("Demo data seeded")
	}

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	// Public auth routes
	api.POST("/auth/login", handler.Login)

	// Everything below requires a valid JWT with tenant context
	authAPI := api.Group("/auth", mid.AuthMiddleware)
	authAPI.GET("/me", handler.Me)

	manage := mid.RequireRole(model.RoleOwner, model.RoleManager)

	// Product API routes - STAFF keeps read and sell access
	productAPI := api.Group("/products", mid.AuthMiddleware)
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/low-stock", handler.LowStock)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.POST("", handler.CreateProduct, manage)
	productAPI.PUT("/:id", handler.UpdateProduct, manage)
	productAPI.POST("/:productId/variants/:variantId/sell", handler.SellVariant)
	productAPI.POST("/:productId/variants/:variantId/adjust", handler.AdjustVariant, manage)

	// Supplier API routes
	supplierAPI := api.Group("/suppliers", mid.AuthMiddleware)
	supplierAPI.GET("", handler.ListSuppliers)
	supplierAPI.POST("", handler.CreateSupplier, manage)

	// Purchase order API routes
	poAPI := api.Group("/purchase-orders", mid.AuthMiddleware)
	poAPI.GET("", handler.ListPurchaseOrders)
	poAPI.POST("", handler.CreatePurchaseOrder, manage)
	poAPI.POST("/:poId/receive", handler.ReceivePurchaseOrder, manage)
	poAPI.POST("/:poId/status", handler.UpdatePurchaseOrderStatus, manage)

	// Dashboard API routes
	dashboardAPI := api.Group("/dashboard", mid.AuthMiddleware)
	dashboardAPI.GET("", handler.GetDashboard)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
