package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"crackers_back_end/internal/handlers"
	"crackers_back_end/internal/handlers/admin"
	"crackers_back_end/internal/handlers/product"
	"crackers_back_end/internal/handlers/user"
	"crackers_back_end/internal/middleware"
	"crackers_back_end/internal/services"
)

// RegisterRoutes branche toute la surface HTTP. Le service de checkout et
// le notifier sont construits au démarrage et injectés ici.
func RegisterRoutes(r *gin.Engine, checkoutSvc *services.CheckoutService, notifier services.Notifier, lowStockThreshold int) {
	r.Use(cors.New(corsConfig()))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Catalogue public
	api.GET("/products", product.GetCatalog)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/categories", product.GetAllCategories)

	// Checkout : ouvert aux invités, identité lue si présente
	api.POST("/checkout", middleware.OptionalAuth(), middleware.CheckoutRateLimit(), handlers.Checkout(checkoutSvc))

	// Auth
	api.POST("/auth/login", user.Login)

	// Profil (authentifié)
	me := api.Group("/me", middleware.AuthRequired())
	me.GET("", user.GetProfile)
	me.PUT("", user.UpdateProfile)

	// Commandes client (client approuvé)
	orders := api.Group("/orders", middleware.AuthRequired(), middleware.RequireApprovedCustomer)
	orders.GET("", user.GetMyOrders)
	orders.GET("/:id", user.GetOrderByID)

	// Back-office staff
	staff := api.Group("", middleware.AuthRequired(), middleware.RequireStaff)
	staff.POST("/update-stock", handlers.UpdateStock(lowStockThreshold))
	staff.POST("/products", product.CreateProduct)
	staff.PUT("/products/:id", product.UpdateProduct)
	staff.POST("/categories", product.CreateCategory)
	staff.GET("/staff/inventory", admin.GetStaffInventory(lowStockThreshold))
	staff.GET("/staff/orders", admin.GetAllOrders)
	staff.PUT("/staff/orders/:id/status", admin.UpdateOrderStatus(notifier))

	// Back-office admin
	adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	adminGroup.GET("/dashboard", admin.GetDashboardStats(lowStockThreshold))
	adminGroup.DELETE("/products/:id", product.DeleteProduct)
	adminGroup.PUT("/customers/:id/approve", admin.ApproveCustomer)
}

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}

	return cfg
}
