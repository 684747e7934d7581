package paymentControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubProcessor(t *testing.T, intents map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk_test_123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{"type": "invalid_request_error", "message": "Invalid API Key"},
			})
			return
		}

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/payment_intents":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "53498", r.PostForm.Get("amount"))
			assert.Equal(t, "ngn", r.PostForm.Get("currency"))
			json.NewEncoder(w).Encode(map[string]string{
				"id":            "pi_123",
				"client_secret": "pi_123_secret_abc",
				"status":        "requires_payment_method",
			})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/payment_intents/"):
			id := strings.TrimPrefix(r.URL.Path, "/payment_intents/")
			status, ok := intents[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]string{"type": "invalid_request_error", "message": "No such payment_intent"},
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"id": id, "status": status})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestClient(t *testing.T, apiURL string) *StripeClient {
	t.Helper()
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_API_URL", apiURL)
	client, err := NewStripeClientFromEnv()
	require.NoError(t, err)
	return client
}

func TestCreateIntent(t *testing.T) {
	server := newStubProcessor(t, nil)
	defer server.Close()
	client := newTestClient(t, server.URL)

	id, secret, err := client.CreateIntent(53498, "ngn")
	require.NoError(t, err)
	assert.Equal(t, "pi_123", id)
	assert.Equal(t, "pi_123_secret_abc", secret)
}

func TestIntentConfirmed(t *testing.T) {
	server := newStubProcessor(t, map[string]string{
		"pi_paid":    "succeeded",
		"pi_pending": "requires_payment_method",
	})
	defer server.Close()
	client := newTestClient(t, server.URL)

	confirmed, err := client.IntentConfirmed("pi_paid")
	require.NoError(t, err)
	assert.True(t, confirmed)

	confirmed, err = client.IntentConfirmed("pi_pending")
	require.NoError(t, err)
	assert.False(t, confirmed)

	_, err = client.IntentConfirmed("pi_missing")
	assert.Error(t, err)
}

func TestNewStripeClientRequiresKey(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	_, err := NewStripeClientFromEnv()
	assert.Error(t, err)
}
