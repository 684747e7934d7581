package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingRate describes a delivery option shown at checkout. BasePrice
// is in integer minor units.
type ShippingRate struct {
	ID               string         `gorm:"primaryKey;type:uuid" json:"id"`
	Method           ShippingMethod `gorm:"type:VARCHAR(20);unique;not null" json:"method"`
	Name             string         `gorm:"not null" json:"name"`
	Description      string         `json:"description"`
	BasePrice        int64          `gorm:"not null" json:"base_price"`
	EstimatedDaysMin int            `json:"estimated_days_min"`
	EstimatedDaysMax int            `json:"estimated_days_max"`
	CreatedAt        time.Time      `json:"created_at"`
}

func (s *ShippingRate) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
