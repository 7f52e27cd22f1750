//go:build unit

package nova_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tablebook/internal/infra/nova"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/phone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *nova.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return nova.NewClient(config.NovaConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
}

func TestFetchTableStatus(t *testing.T) {
	t.Run("decodes areas and authenticates", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "merchant-1", r.URL.Query().Get("merchantRef"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"areas": []map[string]any{
					{"name": "Patio", "tables": []map[string]any{
						{"id": "t1", "name": "P1", "capacity": 4, "occupied": true},
					}},
				},
			})
		}))

		areas, err := client.FetchTableStatus(context.Background(), "merchant-1")
		require.NoError(t, err)
		require.Len(t, areas, 1)
		assert.Equal(t, "Patio", areas[0].Name)
		require.Len(t, areas[0].Tables, 1)
		assert.True(t, areas[0].Tables[0].Occupied)
	})

	t.Run("missing merchant ref never calls out", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			t.Fatal("unexpected request")
		}))
		_, err := client.FetchTableStatus(context.Background(), "")
		assert.ErrorIs(t, err, nova.ErrMissingExternalRef)
	})
}

func TestBookTable(t *testing.T) {
	t.Run("occupied rejection maps to the sentinel", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode([]map[string]string{
				{"errorCode": "TableAlreadyOccupied", "message": "table is taken"},
			})
		}))

		err := client.BookTable(context.Background(), "t1", nova.BookTableParams{
			CustomerID: "c1", Date: time.Now(), PartySize: 2,
		})
		assert.ErrorIs(t, err, nova.ErrTableAlreadyOccupied)
	})

	t.Run("other API errors keep status and code", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"errors": []map[string]string{{"errorCode": "InvalidDate", "message": "bad date"}},
			})
		}))

		err := client.BookTable(context.Background(), "t1", nova.BookTableParams{PartySize: 2})
		require.Error(t, err)

		var apiErr *nova.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Len(t, apiErr.Errors, 1)
		assert.Equal(t, "InvalidDate", apiErr.Errors[0].ErrorCode)
	})
}

func TestSendSMS(t *testing.T) {
	t.Run("posts the split phone number", func(t *testing.T) {
		var got map[string]any
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))

		num := phone.Number{CountryCode: "+1", MobileNumber: "4155550100"}
		require.NoError(t, client.SendSMS(context.Background(), "merchant-1", num, "hello"))

		assert.Equal(t, "+1", got["countryCode"])
		assert.Equal(t, "4155550100", got["mobileNumber"])
		assert.Equal(t, "hello", got["message"])
	})

	t.Run("over-length text rejected locally", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			t.Fatal("unexpected request")
		}))

		long := make([]byte, 161)
		for i := range long {
			long[i] = 'a'
		}
		err := client.SendSMS(context.Background(), "merchant-1", phone.Number{}, string(long))
		assert.ErrorIs(t, err, nova.ErrSMSTooLong)
	})
}

func TestRetryBehavior(t *testing.T) {
	t.Run("HTTP errors are not retried", func(t *testing.T) {
		var calls atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := client.FetchTableStatus(context.Background(), "merchant-1")
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("deadline surfaces as the timeout sentinel", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
			w.WriteHeader(http.StatusOK)
		}))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := client.FetchTableStatus(ctx, "merchant-1")
		assert.ErrorIs(t, err, nova.ErrExternalTimeout)
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	t.Run("routes through the configured gateway", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/payments/payline/checkout-session", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]string{"checkoutUrl": "https://pay.example/s/abc"})
		}))

		url, err := client.CreateCheckoutSession(context.Background(), nova.CheckoutParams{
			MerchantRef: "merchant-1",
			GatewayID:   "payline",
			AmountCents: 2000,
			ReturnURL:   "https://bella.tablebook.app/return",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/s/abc", url)
	})

	t.Run("missing gateway id falls back to the merchant config", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/merchant-config":
				assert.Equal(t, "merchant-1", r.URL.Query().Get("merchantRef"))
				_ = json.NewEncoder(w).Encode(map[string]string{
					"merchantRef": "merchant-1",
					"gatewayId":   "novapay_hosted",
					"currency":    "USD",
				})
			case "/payments/novapay/checkout-session":
				_ = json.NewEncoder(w).Encode(map[string]string{"checkoutUrl": "https://pay.example/s/xyz"})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))

		url, err := client.CreateCheckoutSession(context.Background(), nova.CheckoutParams{
			MerchantRef: "merchant-1",
			AmountCents: 1500,
			ReturnURL:   "https://bella.tablebook.app/return",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/s/xyz", url)
	})

	t.Run("unconfigured merchant surfaces the sentinel", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"merchantRef": "merchant-1"})
		}))

		_, err := client.CreateCheckoutSession(context.Background(), nova.CheckoutParams{
			MerchantRef: "merchant-1",
			AmountCents: 1500,
		})
		assert.ErrorIs(t, err, nova.ErrGatewayNotConfigured)
	})
}
