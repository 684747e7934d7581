package paymentControllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// StripeClient talks to the payment processor's REST API. The hosted
// payment UI confirms intents on the client side; the order flow only
// ever creates intents and checks their status here.
type StripeClient struct {
	secretKey string
	apiURL    string
	http      *http.Client
}

// stripeIntent is the subset of the processor's payment-intent envelope
// the storefront cares about.
type stripeIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Error        *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewStripeClientFromEnv reads STRIPE_SECRET_KEY and, optionally,
// STRIPE_API_URL (overridden in tests).
func NewStripeClientFromEnv() (*StripeClient, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return nil, fmt.Errorf("stripe configuration missing")
	}
	apiURL := os.Getenv("STRIPE_API_URL")
	if apiURL == "" {
		apiURL = "https://api.stripe.com/v1"
	}
	return &StripeClient{secretKey: key, apiURL: apiURL, http: &http.Client{}}, nil
}

func (s *StripeClient) do(method, path string, form url.Values) (*stripeIntent, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, s.apiURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment processor: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var intent stripeIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse processor response: %v", err)
	}
	if intent.Error != nil {
		return nil, fmt.Errorf("processor error: %s", intent.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("processor API error (%d): %s", resp.StatusCode, string(raw))
	}
	return &intent, nil
}

// CreateIntent registers a charge for the given amount in minor units
// and returns the intent id and the client secret consumed by the
// hosted payment UI.
func (s *StripeClient) CreateIntent(amount int64, currency string) (id, clientSecret string, err error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")

	intent, err := s.do(http.MethodPost, "/payment_intents", form)
	if err != nil {
		return "", "", err
	}
	if intent.ClientSecret == "" {
		return "", "", fmt.Errorf("processor returned empty client secret")
	}
	return intent.ID, intent.ClientSecret, nil
}

// IntentConfirmed reports whether the payer completed the intent.
// Satisfies the order flow's IntentVerifier.
func (s *StripeClient) IntentConfirmed(id string) (bool, error) {
	intent, err := s.do(http.MethodGet, "/payment_intents/"+url.PathEscape(id), nil)
	if err != nil {
		return false, err
	}
	return intent.Status == "succeeded" || intent.Status == "processing", nil
}

// -------- Handlers --------

type createIntentRequest struct {
	Amount   int64  `json:"amount" binding:"required,min=1"`
	Currency string `json:"currency"`
}

// CreateIntentHandler handles POST /payments/intent for the checkout
// page. Amounts are integer minor units; currency defaults to NGN.
func CreateIntentHandler(client *StripeClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request: " + err.Error()})
			return
		}
		if req.Currency == "" {
			req.Currency = "ngn"
		}

		id, secret, err := client.CreateIntent(req.Amount, req.Currency)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "clientSecret": secret})
	}
}
