package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/chuta/ejijikobi/controllers/order"
	paymentControllers "github.com/chuta/ejijikobi/controllers/payment"
	"github.com/chuta/ejijikobi/email"
	"github.com/chuta/ejijikobi/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, stripe *paymentControllers.StripeClient, mailer *email.Sender) {
	store := orderControllers.NewOrderStore(db)

	// A typed nil must not leak into the interface; card orders are
	// refused outright when the processor is not configured.
	var verifier orderControllers.IntentVerifier
	if stripe != nil {
		verifier = stripe
	}

	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Place a new order
		orders.POST("", orderControllers.PlaceOrderHandler(store, verifier, mailer))

		// Fetch the caller's orders
		orders.GET("", orderControllers.GetUserOrdersHandler(db))

		// Fetch a single order (owner only)
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db, false))
	}

	if stripe != nil {
		payments := r.Group("/payments")
		payments.Use(middleware.ValidateToken)
		{
			payments.POST("/intent", paymentControllers.CreateIntentHandler(stripe))
		}
	}
}
