package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chuta/ejijikobi/models"
)

// GetProducts lists products with optional query filters:
// ?category=formal&gender=male&featured=true&new=true
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		if category := c.Query("category"); category != "" {
			if _, err := models.ParseCategory(category); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid category"})
				return
			}
			query = query.Where("category = ?", category)
		}
		if gender := c.Query("gender"); gender != "" {
			if _, err := models.ParseGender(gender); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid gender"})
				return
			}
			query = query.Where("gender = ?", gender)
		}
		if c.Query("featured") == "true" {
			query = query.Where("is_featured = ?", true)
		}
		if c.Query("new") == "true" {
			query = query.Where("is_new = ?", true)
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
