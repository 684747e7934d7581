package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/chuta/ejijikobi/controllers/order"
	productControllers "github.com/chuta/ejijikobi/controllers/product"
	userControllers "github.com/chuta/ejijikobi/controllers/user"
	"github.com/chuta/ejijikobi/email"
	"github.com/chuta/ejijikobi/middleware"
)

// SetupAdminRoutes registers the back-office endpoints. Requires the
// admin API key.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, mailer *email.Sender) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		// Product management
		products := admin.Group("/products")
		{
			products.POST("", productControllers.CreateProduct(db))
			products.PUT("/:id", productControllers.UpdateProduct(db))
			products.DELETE("/:id", productControllers.DeleteProduct(db))
			products.POST("/import", productControllers.ImportProductsFromCSV(db))
			products.POST("/import/xlsx", productControllers.ImportProductsFromExcel(db))
		}

		// Order management
		orders := admin.Group("/orders")
		{
			orders.GET("", orderControllers.GetAllOrdersHandler(db))
			orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db, true))
			orders.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db, mailer))
			orders.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orders.PUT("/:orderID/tracking", orderControllers.UpdateTrackingHandler(db))
			orders.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))

			// websocket endpoint for real-time order updates
			orders.GET("/ws", orderControllers.OrderWebSocketHandler)
		}

		// User management
		admin.GET("/users", userControllers.ListUsers(db))
	}
}
