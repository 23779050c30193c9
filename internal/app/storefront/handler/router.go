package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"honeymart/internal/app/storefront/entity"
	"honeymart/pkg/logger"
	"honeymart/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
// Чтение каталога публично, запись доступна staff и admin,
// корзина и избранное требуют аутентификации
func SetupRoutes(
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	cartHandler *CartHandler,
	wishlistHandler *WishlistHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("storefront-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storefront-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Аутентификация и профиль
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/validate", authHandler.ValidateToken)

		protected := auth.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PATCH("/profile", authHandler.UpdateProfile)
			protected.PUT("/password/change", authHandler.ChangePassword)
		}
	}

	// Категории: чтение публично, запись для staff и admin
	categories := router.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories)
		categories.GET("/:id", catalogHandler.GetCategory)
		categories.GET("/:id/products", catalogHandler.GetCategoryProducts)

		staff := categories.Group("")
		staff.Use(authMiddleware.Authenticate())
		staff.Use(authMiddleware.RequireRole(entity.RoleStaff))
		{
			staff.POST("", catalogHandler.CreateCategory)
			staff.PUT("/:id", catalogHandler.UpdateCategory)
			staff.DELETE("/:id", catalogHandler.DeleteCategory)
		}
	}

	// Товары: чтение публично, запись для staff и admin
	products := router.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/low_stock", catalogHandler.GetLowStockProducts)
		products.GET("/:id", catalogHandler.GetProduct)

		staff := products.Group("")
		staff.Use(authMiddleware.Authenticate())
		staff.Use(authMiddleware.RequireRole(entity.RoleStaff))
		{
			staff.POST("", catalogHandler.CreateProduct)
			staff.PUT("/:id", catalogHandler.UpdateProduct)
			staff.DELETE("/:id", catalogHandler.DeleteProduct)
			staff.POST("/:id/update_stock", catalogHandler.UpdateStock)
		}
	}

	// Корзина: только для аутентифицированных пользователей
	cart := router.Group("/cart")
	cart.Use(authMiddleware.Authenticate())
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.UpdateItem)
		cart.PATCH("/items/:id", cartHandler.UpdateItem)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.DELETE("/clear", cartHandler.ClearCart)
	}

	// Избранное: только для аутентифицированных пользователей
	wishlist := router.Group("/wishlist")
	wishlist.Use(authMiddleware.Authenticate())
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("", wishlistHandler.AddProduct)
		wishlist.DELETE("/:id", wishlistHandler.RemoveItem)
		wishlist.DELETE("/product/:product_id", wishlistHandler.RemoveProduct)
	}

	return router
}
