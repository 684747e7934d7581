package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string
type PaymentMethod string
type ShippingMethod string

const (
	// Order statuses (admin-driven after placement)
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting processing
	OrderStatusProcessing OrderStatus = "processing" // Being prepared for dispatch
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to the carrier
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the item
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before delivery

	// Payment statuses
	PaymentStatusPending         PaymentStatus = "pending"          // Pay on delivery, not collected yet
	PaymentStatusAwaitingPayment PaymentStatus = "awaiting_payment" // Card order awaiting settlement
	PaymentStatusPaid            PaymentStatus = "paid"             // Payment completed successfully
	PaymentStatusFailed          PaymentStatus = "failed"           // Payment attempt failed
	PaymentStatusRefunded        PaymentStatus = "refunded"         // Money returned to customer

	// Payment methods
	PaymentMethodCard          PaymentMethod = "card"
	PaymentMethodPayOnDelivery PaymentMethod = "pay_on_delivery"

	// Shipping methods
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
	ShippingSameDay  ShippingMethod = "same_day"
)

// ShippingAddress is stored on the order as a JSON column so the order
// keeps the address exactly as it was at purchase time, independent of
// the user's address book.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Order monetary fields are integer minor units (kobo).
type Order struct {
	ID              string          `gorm:"primaryKey;type:uuid" json:"id"`
	UserID          string          `gorm:"not null;index" json:"user_id"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod   PaymentMethod   `gorm:"type:VARCHAR(20)" json:"payment_method"`
	ShippingMethod  ShippingMethod  `gorm:"type:VARCHAR(20);default:'standard'" json:"shipping_method"`
	ShippingAddress ShippingAddress `gorm:"serializer:json" json:"shipping_address"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	TrackingURL     string          `json:"tracking_url,omitempty"`
	Subtotal        int64           `gorm:"not null" json:"subtotal"`
	ShippingFee     int64           `gorm:"not null" json:"shipping_fee"`
	Total           int64           `gorm:"not null" json:"total"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem captures the unit price at purchase time so later product
// price changes never alter historical orders.
type OrderItem struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID   string    `gorm:"not null;index" json:"order_id"`
	ProductID string    `gorm:"not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Size      string    `gorm:"not null" json:"size"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

var ErrInvalidTransition = errors.New("invalid order status transition")

// ValidateStatusTransition enforces the order lifecycle:
// pending → processing → shipped → delivered, with cancellation allowed
// from any non-terminal state. Same-status writes are rejected.
func ValidateStatusTransition(from, to OrderStatus) error {
	if from == to {
		return ErrInvalidTransition
	}
	switch from {
	case OrderStatusPending:
		if to == OrderStatusProcessing || to == OrderStatusCancelled {
			return nil
		}
	case OrderStatusProcessing:
		if to == OrderStatusShipped || to == OrderStatusCancelled {
			return nil
		}
	case OrderStatusShipped:
		if to == OrderStatusDelivered || to == OrderStatusCancelled {
			return nil
		}
	case OrderStatusDelivered, OrderStatusCancelled:
		// terminal states
	}
	return ErrInvalidTransition
}

// Map string to OrderStatus
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Map string to PaymentStatus
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusAwaitingPayment, PaymentStatusPaid,
		PaymentStatusFailed, PaymentStatusRefunded:
		return PaymentStatus(s), nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// Map string to PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodCard, PaymentMethodPayOnDelivery:
		return PaymentMethod(s), nil
	default:
		return "", errors.New("invalid payment method")
	}
}
