package orderControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chuta/ejijikobi/middleware"
	"github.com/chuta/ejijikobi/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ShippingRate{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, price int64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        "Ankara Print Blazer",
		Description: "Modern cut blazer with traditional Ankara print",
		Price:       price,
		Images:      []string{"/products/ankara-blazer-1.jpg"},
		Category:    models.CategoryFormal,
		Gender:      models.GenderMale,
		Sizes:       []string{"S", "M", "L", "XL"},
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// stubVerifier records whether the processor was consulted.
type stubVerifier struct {
	confirmed bool
	err       error
	calls     int
}

func (v *stubVerifier) IntentConfirmed(id string) (bool, error) {
	v.calls++
	return v.confirmed, v.err
}

// failingItemStore makes the order-item write fail, optionally breaking
// the compensating delete as well.
type failingItemStore struct {
	OrderStore
	deleteErr   error
	deleteCalls int
}

func (s *failingItemStore) CreateOrderItem(item *models.OrderItem) error {
	return errors.New("connection reset")
}

func (s *failingItemStore) DeleteOrder(id string) error {
	s.deleteCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.OrderStore.DeleteOrder(id)
}

func validCardRequest(productID string) PlaceOrderRequest {
	return PlaceOrderRequest{
		ProductID:       productID,
		Size:            "M",
		Quantity:        2,
		PaymentMethod:   "card",
		PaymentIntentID: "pi_123",
	}
}

func TestPlaceOrderComputesServerSideTotals(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 25999)
	store := NewOrderStore(db)
	verifier := &stubVerifier{confirmed: true}

	order, item, err := PlaceOrder(store, verifier, "user-1", validCardRequest(product.ID))
	require.NoError(t, err)

	assert.Equal(t, int64(51998), order.Subtotal)
	assert.Equal(t, int64(1500), order.ShippingFee)
	assert.Equal(t, int64(53498), order.Total)
	assert.Equal(t, order.Subtotal+order.ShippingFee, order.Total)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusAwaitingPayment, order.PaymentStatus)

	assert.Equal(t, order.ID, item.OrderID)
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "M", item.Size)
	assert.Equal(t, int64(25999), item.Price)
}

func TestPlaceOrderCapturesPriceAtPurchaseTime(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 25999)
	store := NewOrderStore(db)

	_, item, err := PlaceOrder(store, &stubVerifier{confirmed: true}, "user-1", validCardRequest(product.ID))
	require.NoError(t, err)

	// A later price change must not affect the recorded item.
	require.NoError(t, db.Model(product).Update("price", int64(99999)).Error)

	var stored models.OrderItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, int64(25999), stored.Price)
}

func TestPlaceOrderPayOnDeliverySkipsPaymentGate(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 18999)
	store := NewOrderStore(db)
	verifier := &stubVerifier{confirmed: false}

	order, _, err := PlaceOrder(store, verifier, "user-1", PlaceOrderRequest{
		ProductID:       product.ID,
		Size:            "L",
		Quantity:        1,
		PaymentMethod:   "pay_on_delivery",
		DeliveryAddress: "12 Allen Avenue, Ikeja",
		PhoneNumber:     "+2348012345678",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, models.PaymentMethodPayOnDelivery, order.PaymentMethod)
	assert.Equal(t, "12 Allen Avenue, Ikeja", order.ShippingAddress.Address)
	assert.Equal(t, "+2348012345678", order.ShippingAddress.Phone)
	assert.Zero(t, verifier.calls, "payment processor must not be consulted for pay on delivery")
}

func TestPlaceOrderMissingFields(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 25999)
	store := NewOrderStore(db)

	cases := map[string]PlaceOrderRequest{
		"missing product": {Size: "M", Quantity: 1, PaymentMethod: "card"},
		"missing size":    {ProductID: product.ID, Quantity: 1, PaymentMethod: "card"},
		"zero quantity":   {ProductID: product.ID, Size: "M", PaymentMethod: "card"},
		"missing method":  {ProductID: product.ID, Size: "M", Quantity: 1},
		"unknown method":  {ProductID: product.ID, Size: "M", Quantity: 1, PaymentMethod: "barter"},
		"negative qty":    {ProductID: product.ID, Size: "M", Quantity: -3, PaymentMethod: "card"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := PlaceOrder(store, &stubVerifier{confirmed: true}, "user-1", req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "no order may exist after rejected requests")
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	store := NewOrderStore(db)

	_, _, err := PlaceOrder(store, &stubVerifier{confirmed: true}, "user-1", validCardRequest("missing-id"))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPlaceOrderRejectsUndeclaredSize(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 25999)
	store := NewOrderStore(db)

	req := validCardRequest(product.ID)
	req.Size = "XXXL"
	_, _, err := PlaceOrder(store, &stubVerifier{confirmed: true}, "user-1", req)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestPlaceOrderUnconfirmedCardPayment(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 25999)
	store := NewOrderStore(db)

	t.Run("intent not confirmed", func(t *testing.T) {
		_, _, err := PlaceOrder(store, &stubVerifier{confirmed: false}, "user-1", validCardRequest(product.ID))
		assert.ErrorIs(t, err, ErrPaymentNotConfirmed)
	})

	t.Run("verifier error", func(t *testing.T) {
		_, _, err := PlaceOrder(store, &stubVerifier{err: errors.New("processor down")}, "user-1", validCardRequest(product.ID))
		assert.ErrorIs(t, err, ErrPaymentNotConfirmed)
	})

	t.Run("missing intent id", func(t *testing.T) {
		req := validCardRequest(product.ID)
		req.PaymentIntentID = ""
		_, _, err := PlaceOrder(store, &stubVerifier{confirmed: true}, "user-1", req)
		assert.ErrorIs(t, err, ErrPaymentNotConfirmed)
	})

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "no order may exist for an unconfirmed card payment")
}

func TestPlaceOrderCompensatesHeaderOnItemFailure(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 25999)
	store := &failingItemStore{OrderStore: NewOrderStore(db)}

	_, _, err := PlaceOrder(store, &stubVerifier{confirmed: true}, "user-1", validCardRequest(product.ID))
	assert.ErrorIs(t, err, ErrOrderItemCreateFailed)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders, "order header must be deleted when the item write fails")

	var items int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestCompensationFailureStillReturnsItemError(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 25999)
	store := &failingItemStore{
		OrderStore: NewOrderStore(db),
		deleteErr:  errors.New("connection reset"),
	}

	_, _, err := PlaceOrder(store, &stubVerifier{confirmed: true}, "user-1", validCardRequest(product.ID))

	// The caller sees the item-write failure, not the delete failure,
	// and the delete was retried.
	assert.ErrorIs(t, err, ErrOrderItemCreateFailed)
	assert.Equal(t, 3, store.deleteCalls)
}

// -------- HTTP-level tests --------

func signTestToken(t *testing.T, secret, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": "buyer@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := NewOrderStore(db)
	verifier := IntentVerifier(&stubVerifier{confirmed: true})
	r.POST("/orders", middleware.ValidateToken, PlaceOrderHandler(store, verifier, nil))
	return r
}

func TestPlaceOrderEndpointRequiresAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newOrderRouter(db)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`{}`))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`{}`))
		req.Header.Set("Authorization", "Bearer not-a-token")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderEndpointValidatesBody(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newOrderRouter(db)
	token := signTestToken(t, "test-secret", "user-1")

	w := httptest.NewRecorder()
	body, _ := json.Marshal(map[string]interface{}{"size": "M", "quantity": 1})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderEndpointSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	product := seedProduct(t, db, 25999)
	r := newOrderRouter(db)
	token := signTestToken(t, "test-secret", "user-1")

	w := httptest.NewRecorder()
	body, _ := json.Marshal(validCardRequest(product.ID))
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Order     models.Order     `json:"order"`
		OrderItem models.OrderItem `json:"orderItem"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(53498), resp.Order.Total)
	assert.Equal(t, resp.Order.ID, resp.OrderItem.OrderID)
	assert.Equal(t, "user-1", resp.Order.UserID)
}
