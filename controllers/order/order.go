package orderControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chuta/ejijikobi/email"
	"github.com/chuta/ejijikobi/models"
)

// ShippingFee is the flat delivery charge in minor units (₦1,500).
const ShippingFee int64 = 1500

// Error taxonomy for the placement flow. Handlers map these to HTTP
// statuses; anything else is a 500.
var (
	ErrInvalidRequest        = errors.New("missing or invalid required field")
	ErrProductNotFound       = errors.New("product not found")
	ErrInvalidSize           = errors.New("size not offered for this product")
	ErrPaymentNotConfirmed   = errors.New("card payment not confirmed")
	ErrOrderCreateFailed     = errors.New("failed to create order")
	ErrOrderItemCreateFailed = errors.New("failed to create order item")
)

// OrderStore is the persistence boundary of the placement flow. The two
// writes are deliberately separate calls: the store is not assumed to
// offer multi-statement transactions, so a failed item write is undone
// with a compensating delete instead.
type OrderStore interface {
	GetProduct(id string) (*models.Product, error)
	CreateOrder(order *models.Order) error
	CreateOrderItem(item *models.OrderItem) error
	DeleteOrder(id string) error
}

// IntentVerifier reports whether a payment intent has been confirmed by
// the processor. Card orders must pass this gate before any write.
type IntentVerifier interface {
	IntentConfirmed(id string) (bool, error)
}

type gormOrderStore struct {
	db *gorm.DB
}

// NewOrderStore wraps a gorm handle in the OrderStore interface.
func NewOrderStore(db *gorm.DB) OrderStore {
	return &gormOrderStore{db: db}
}

func (s *gormOrderStore) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *gormOrderStore) CreateOrder(order *models.Order) error {
	return s.db.Create(order).Error
}

func (s *gormOrderStore) CreateOrderItem(item *models.OrderItem) error {
	return s.db.Create(item).Error
}

func (s *gormOrderStore) DeleteOrder(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.Order{})
	return res.Error
}

// -------- Request Structs --------

type PlaceOrderRequest struct {
	ProductID       string `json:"productId"`
	Size            string `json:"size"`
	Quantity        int    `json:"quantity"`
	PaymentMethod   string `json:"payment_method"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Status          string `json:"status,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type UpdateTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
	TrackingURL    string `json:"tracking_url"`
}

// -------- Core Logic --------

// PlaceOrder runs the placement sequence for a single product checkout:
// resolve the server-side price, gate card payments on a confirmed
// intent, write the order header, then the line item. If the item write
// fails the header is removed again so no itemless order survives the
// request. The client-supplied price, if any, never enters the
// calculation.
func PlaceOrder(store OrderStore, verifier IntentVerifier, userID string, req PlaceOrderRequest) (*models.Order, *models.OrderItem, error) {
	if req.ProductID == "" || req.Size == "" || req.Quantity < 1 || req.PaymentMethod == "" {
		return nil, nil, ErrInvalidRequest
	}
	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, nil, ErrInvalidRequest
	}

	product, err := store.GetProduct(req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, err
	}
	if len(product.Sizes) > 0 && !product.HasSize(req.Size) {
		return nil, nil, ErrInvalidSize
	}

	// Card orders must never reach the books unpaid. Pay-on-delivery
	// intentionally skips this gate.
	paymentStatus := models.PaymentStatusPending
	if method == models.PaymentMethodCard {
		if verifier == nil || req.PaymentIntentID == "" {
			return nil, nil, ErrPaymentNotConfirmed
		}
		confirmed, err := verifier.IntentConfirmed(req.PaymentIntentID)
		if err != nil || !confirmed {
			return nil, nil, ErrPaymentNotConfirmed
		}
		paymentStatus = models.PaymentStatusAwaitingPayment
	}

	subtotal := product.Price * int64(req.Quantity)
	total := subtotal + ShippingFee

	order := &models.Order{
		UserID:         userID,
		Status:         models.OrderStatusPending,
		PaymentStatus:  paymentStatus,
		PaymentMethod:  method,
		ShippingMethod: models.ShippingStandard,
		ShippingAddress: models.ShippingAddress{
			Address: req.DeliveryAddress,
			Phone:   req.PhoneNumber,
		},
		Subtotal:    subtotal,
		ShippingFee: ShippingFee,
		Total:       total,
	}
	if err := store.CreateOrder(order); err != nil {
		log.Println("order header write failed:", err)
		return nil, nil, ErrOrderCreateFailed
	}

	item := &models.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Price:     product.Price, // captured at purchase time
	}
	if err := store.CreateOrderItem(item); err != nil {
		log.Println("order item write failed:", err)
		compensateOrder(store, order.ID)
		return nil, nil, ErrOrderItemCreateFailed
	}

	return order, item, nil
}

// compensateOrder deletes an order header left behind by a failed item
// write. Best effort: the delete is idempotent (a vanished header counts
// as done) and retried twice; a delete that still fails is logged and
// swallowed so the caller keeps the item-write error.
func compensateOrder(store OrderStore, orderID string) {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		err = store.DeleteOrder(orderID)
		if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
			return
		}
	}
	log.Println("compensating delete failed for order", orderID, ":", err)
}

// -------- Handlers --------

// PlaceOrderHandler handles POST /orders for the authenticated user.
func PlaceOrderHandler(store OrderStore, verifier IntentVerifier, mailer *email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
			return
		}

		order, item, err := PlaceOrder(store, verifier, userID, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidSize):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			case errors.Is(err, ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			case errors.Is(err, ErrPaymentNotConfirmed):
				c.JSON(http.StatusPaymentRequired, gin.H{"message": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			}
			return
		}

		broadcastOrderEvent("order_placed", *order)
		if mailer != nil {
			o := *order
			o.Items = []models.OrderItem{*item}
			go mailer.SendOrderConfirmation(o)
		}

		c.JSON(http.StatusOK, gin.H{"order": order, "orderItem": item})
	}
}

// GetUserOrdersHandler lists the caller's own orders, newest first.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderByIDHandler returns a single order; users can only read their
// own, admin routes pass admin=true.
func GetOrderByIDHandler(db *gorm.DB, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("Items").
			Preload("Items.Product").
			First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		if !admin && order.UserID != c.GetString("user_id") {
			c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// GetAllOrdersHandler lists every order (admin).
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// UpdateOrderStatusHandler moves an order along its lifecycle (admin).
// A transition to shipped dispatches the status email; a mail failure
// never fails the update.
func UpdateOrderStatusHandler(db *gorm.DB, mailer *email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").Preload("Items.Product").
			First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		if err := models.ValidateStatusTransition(order.Status, newStatus); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update order status"})
			return
		}
		order.Status = newStatus

		broadcastOrderEvent("status_changed", order)
		if newStatus == models.OrderStatusShipped && mailer != nil {
			go mailer.SendStatusUpdate(order)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// UpdatePaymentStatusHandler sets the payment status (admin).
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		newStatus, err := models.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		res := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("payment_status", newStatus)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update payment status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

// UpdateTrackingHandler attaches carrier tracking details (admin).
func UpdateTrackingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateTrackingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		res := db.Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
			"tracking_number": req.TrackingNumber,
			"tracking_url":    req.TrackingURL,
		})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update tracking"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tracking updated successfully"})
	}
}

// DeleteOrderHandler removes an order and its items (admin).
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", orderID).
				Delete(&models.Order{}).Error; err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
