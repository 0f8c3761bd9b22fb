// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stockpos/internal/domain/auth"
	"stockpos/internal/domain/billing"
	"stockpos/internal/domain/catalogs/category"
	"stockpos/internal/domain/catalogs/coin"
	"stockpos/internal/domain/catalogs/product"
	"stockpos/internal/domain/catalogs/unit"
	"stockpos/internal/domain/stock"
	"stockpos/internal/domain/users"
	"stockpos/internal/infrastructure/http/v1/handlers"
	"stockpos/internal/infrastructure/http/v1/middleware"
	"stockpos/internal/infrastructure/storage/postgres"
	"stockpos/internal/infrastructure/storage/postgres/billing_repo"
	"stockpos/internal/infrastructure/storage/postgres/catalog_repo"
	"stockpos/internal/infrastructure/storage/postgres/stock_repo"
	"stockpos/internal/infrastructure/storage/postgres/user_repo"
	"stockpos/pkg/logger"
)

// AdminRoleName guards catalog management endpoints.
const AdminRoleName = "Administrator"

// RouterConfig holds router configuration.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager
	Logger    *logger.Logger

	JWTService *auth.JWTService
	AuthConfig auth.ServiceConfig

	// ClientRoleName is the role auto-created buyers receive at checkout.
	ClientRoleName string

	CORSAllowedOrigins []string
	RateLimiter        middleware.RateLimiterConfig
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware. ErrorHandler sits inside Gzip: the error JSON
	// it renders on unwind has to reach the still-open gzip writer,
	// the other way around the compressor closes first and flushes an
	// empty body before the error is written.
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(corsMiddleware(cfg.CORSAllowedOrigins))
	router.Use(middleware.Gzip())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.NewClientRateLimiter(cfg.RateLimiter).Middleware())

	// Repositories
	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)
	unitRepo := catalog_repo.NewUnitRepo(cfg.TxManager)
	coinRepo := catalog_repo.NewCoinRepo(cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	userRepo := user_repo.NewUserRepo(cfg.TxManager)
	roleRepo := user_repo.NewRoleRepo(cfg.TxManager)
	stockRepo := stock_repo.NewStockRepo(cfg.TxManager)
	billingRepo := billing_repo.NewBillingRepo(cfg.TxManager)

	// Services
	categoryService := category.NewService(categoryRepo, productRepo, cfg.TxManager)
	unitService := unit.NewService(unitRepo, productRepo, cfg.TxManager)
	coinService := coin.NewService(coinRepo, cfg.TxManager)
	productService := product.NewService(productRepo, categoryService, unitService, stockRepo, cfg.TxManager)
	userService := users.NewService(userRepo, roleRepo, billingRepo, cfg.TxManager)
	roleService := users.NewRoleService(roleRepo, userRepo, cfg.TxManager)
	authService := auth.NewService(userRepo, roleRepo, cfg.TxManager, cfg.JWTService, cfg.AuthConfig)
	stockService := stock.NewService(stockRepo, productRepo, cfg.TxManager)

	resolver := billing.NewResolver(userRepo, roleRepo, billing.ResolverConfig{
		ClientRoleName: cfg.ClientRoleName,
	})
	billingService := billing.NewService(billingRepo, resolver, stockService, cfg.TxManager)

	// Handlers
	base := handlers.NewBaseHandler()
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	authHandler := handlers.NewAuthHandler(base, authService, userRepo)
	categoryHandler := handlers.NewCategoryHandler(base, categoryService)
	unitHandler := handlers.NewUnitHandler(base, unitService)
	coinHandler := handlers.NewCoinHandler(base, coinService)
	productHandler := handlers.NewProductHandler(base, productService)
	userHandler := handlers.NewUserHandler(base, userService)
	roleHandler := handlers.NewRoleHandler(base, roleService)
	stockHandler := handlers.NewStockHandler(base, stockService)
	billingHandler := handlers.NewBillingHandler(base, billingService)

	// Health endpoints (no auth)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		public := v1.Group("/auth")
		{
			public.POST("/login", authHandler.Login)
			public.POST("/register", authHandler.Register)
		}

		// Everything else requires a valid token
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTService))

		protected.GET("/auth/me", authHandler.Me)

		catalogs := protected.Group("/catalog")
		{
			registerCatalog(catalogs.Group("/categories"), categoryHandler)
			registerCatalog(catalogs.Group("/units"), unitHandler)
			registerCatalog(catalogs.Group("/coins"), coinHandler)
			registerCatalog(catalogs.Group("/products"), productHandler)
		}

		// User and role management is for administrators only
		admin := protected.Group("", middleware.RequireRole(AdminRoleName))
		{
			roles := admin.Group("/roles")
			registerCatalog(roles, roleHandler)

			usersGroup := admin.Group("/users")
			usersGroup.GET("", userHandler.List)
			usersGroup.GET("/:id", userHandler.Get)
			usersGroup.POST("", userHandler.Create)
			usersGroup.PUT("/:id", userHandler.Update)
			usersGroup.DELETE("/:id", userHandler.Delete)
			usersGroup.POST("/:id/restore", userHandler.Restore)
		}

		stockGroup := protected.Group("/stock")
		{
			stockGroup.GET("", stockHandler.List)
			stockGroup.GET("/products/:productId", stockHandler.GetByProduct)
			stockGroup.POST("/intake", stockHandler.Intake)
			stockGroup.PUT("/minimum", stockHandler.SetMinimum)
			stockGroup.GET("/:id/inputs", stockHandler.ListInputs)
			stockGroup.GET("/:id/outputs", stockHandler.ListOutputs)
		}

		billingGroup := protected.Group("/billing")
		{
			billingGroup.POST("/checkout", billingHandler.Checkout)
			billingGroup.GET("/bills", billingHandler.ListBills)
			billingGroup.GET("/bills/:id", billingHandler.GetBill)
		}
	}

	return router
}

// registerCatalog wires the standard CRUD routes of a catalog handler.
func registerCatalog[T interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
	Restore(*gin.Context)
}](rg *gin.RouterGroup, h T) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/restore", h.Restore)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = origins
	}
	return cors.New(corsConfig)
}
