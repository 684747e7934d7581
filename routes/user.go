package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/chuta/ejijikobi/controllers/cart"
	userControllers "github.com/chuta/ejijikobi/controllers/user"
	"github.com/chuta/ejijikobi/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// Profile
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.PUT("", userControllers.UpdateUser(db))

		// Address book
		addressGroup := userGroup.Group("/addresses")
		{
			addressGroup.GET("", userControllers.ListAddresses(db))
			addressGroup.POST("", userControllers.CreateAddress(db))
			addressGroup.DELETE("/:addressID", userControllers.DeleteAddress(db))
		}

		// Shopping cart
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))
			cartGroup.POST("", cartControllers.UpdateCartItem(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("", cartControllers.ClearUserCart(db))
		}

		// Wishlist
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("", cartControllers.GetWishlist(db))
			wishlistGroup.POST("", cartControllers.AddToWishlist(db))
			wishlistGroup.DELETE("/:product_id", cartControllers.RemoveFromWishlist(db))
		}
	}
}
