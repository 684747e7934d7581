package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidEnum is returned by the Parse* helpers on unknown values.
var ErrInvalidEnum = errors.New("invalid enum value")

type ProductCategory string
type ProductGender string

const (
	CategoryTraditional ProductCategory = "traditional"
	CategoryFormal      ProductCategory = "formal"
	CategoryCasual      ProductCategory = "casual"
	CategoryAccessories ProductCategory = "accessories"

	GenderMale   ProductGender = "male"
	GenderFemale ProductGender = "female"
	GenderUnisex ProductGender = "unisex"
)

// Product price is in integer minor units (kobo). Sizes and Images are
// JSON columns so the same model works on postgres and the in-memory
// test store.
type Product struct {
	ID            string          `gorm:"primaryKey;type:uuid" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description"`
	Price         int64           `gorm:"not null" json:"price"`
	Images        []string        `gorm:"serializer:json" json:"images"`
	Category      ProductCategory `gorm:"type:VARCHAR(20)" json:"category"`
	Gender        ProductGender   `gorm:"type:VARCHAR(10)" json:"gender"`
	Sizes         []string        `gorm:"serializer:json" json:"sizes"`
	StockQuantity int             `json:"stock_quantity"`
	IsFeatured    bool            `json:"is_featured"`
	IsNew         bool            `json:"is_new"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasSize reports whether s is one of the product's declared sizes.
func (p *Product) HasSize(s string) bool {
	for _, v := range p.Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// Map string to ProductCategory
func ParseCategory(s string) (ProductCategory, error) {
	switch ProductCategory(s) {
	case CategoryTraditional, CategoryFormal, CategoryCasual, CategoryAccessories:
		return ProductCategory(s), nil
	default:
		return "", ErrInvalidEnum
	}
}

// Map string to ProductGender
func ParseGender(s string) (ProductGender, error) {
	switch ProductGender(s) {
	case GenderMale, GenderFemale, GenderUnisex:
		return ProductGender(s), nil
	default:
		return "", ErrInvalidEnum
	}
}
