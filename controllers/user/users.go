package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chuta/ejijikobi/models"
)

type UpdateUserInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// GetUser returns the caller's profile, creating the local row on first
// sight of an identity from the auth provider.
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		err := db.Preload("Addresses").First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{ID: userID, Email: c.GetString("user_email")}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create profile"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve profile"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUser updates the caller's profile fields.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"name":  input.Name,
			"phone": input.Phone,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	}
}

// ListUsers returns all profiles (admin).
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
