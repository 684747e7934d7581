package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chuta/ejijikobi/models"
)

// GetShippingRatesHandler lists the delivery options shown at checkout.
func GetShippingRatesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rates []models.ShippingRate
		if err := db.Order("base_price ASC").Find(&rates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve shipping rates"})
			return
		}
		c.JSON(http.StatusOK, rates)
	}
}

// SeedShippingRates inserts the default delivery options if the table
// is empty.
func SeedShippingRates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ShippingRate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	rates := []models.ShippingRate{
		{Method: models.ShippingStandard, Name: "Standard Delivery", Description: "Nationwide delivery", BasePrice: 1500, EstimatedDaysMin: 3, EstimatedDaysMax: 7},
		{Method: models.ShippingExpress, Name: "Express Delivery", Description: "Priority handling", BasePrice: 3500, EstimatedDaysMin: 1, EstimatedDaysMax: 3},
		{Method: models.ShippingSameDay, Name: "Same Day Delivery", Description: "Lagos only", BasePrice: 6000, EstimatedDaysMin: 0, EstimatedDaysMax: 1},
	}
	return db.Create(&rates).Error
}
