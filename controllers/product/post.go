package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chuta/ejijikobi/models"
)

type ProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Price         int64    `json:"price" binding:"required,min=1"`
	Images        []string `json:"images" binding:"required,min=1"`
	Category      string   `json:"category" binding:"required"`
	Gender        string   `json:"gender" binding:"required"`
	Sizes         []string `json:"sizes" binding:"required,min=1"`
	StockQuantity int      `json:"stock_quantity" binding:"min=0"`
	IsFeatured    bool     `json:"is_featured"`
	IsNew         bool     `json:"is_new"`
}

func (in *ProductInput) toProduct() (*models.Product, error) {
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	gender, err := models.ParseGender(in.Gender)
	if err != nil {
		return nil, err
	}
	return &models.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Images:        in.Images,
		Category:      category,
		Gender:        gender,
		Sizes:         in.Sizes,
		StockQuantity: in.StockQuantity,
		IsFeatured:    in.IsFeatured,
		IsNew:         in.IsNew,
	}, nil
}

// CreateProduct creates a new product (admin).
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		product, err := input.toProduct()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category or gender"})
			return
		}

		if err := db.Create(product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
