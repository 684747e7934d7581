package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/chuta/ejijikobi/controllers/order"
	paymentControllers "github.com/chuta/ejijikobi/controllers/payment"
	productControllers "github.com/chuta/ejijikobi/controllers/product"
	"github.com/chuta/ejijikobi/email"
)

// SetupRoutes is the single entry-point that wires up the public, user,
// payment and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, stripe *paymentControllers.StripeClient, mailer *email.Sender) {
	// Public catalog routes (no middleware)
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/shipping-rates", orderControllers.GetShippingRatesHandler(db))

	// User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Checkout routes (JWT-protected)
	SetupOrderRoutes(r, db, stripe, mailer)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db, mailer)
}
