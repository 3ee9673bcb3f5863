package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Storefront/internal/pricing"
)

func okOrderHandler(requests *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Order{Success: true, OrderID: "ord_test", TotalCents: 450})
	}
}

func TestClient_InvalidCardNeverHitsNetwork(t *testing.T) {
	var requests atomic.Int32
	ts := httptest.NewServer(okOrderHandler(&requests))
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL)

	bad := validCard()
	bad.CVC = "x"

	_, err := c.PlaceOrder(context.Background(),
		[]Item{{ID: "A", Quantity: 1}}, MethodCard, bad, pricing.Totals{})

	assert.ErrorIs(t, err, ErrInvalidPaymentDetails)
	assert.Zero(t, requests.Load())
}

func TestClient_NonCardMethodSkipsCardValidation(t *testing.T) {
	ts := httptest.NewServer(okOrderHandler(nil))
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL)

	o, err := c.PlaceOrder(context.Background(),
		[]Item{{ID: "A", Quantity: 1}}, MethodCOD, CardDetails{}, pricing.Totals{})

	require.NoError(t, err)
	assert.Equal(t, "ord_test", o.OrderID)
	assert.Equal(t, int64(450), o.TotalCents)
}

func TestClient_EmptyCartRejectedLocally(t *testing.T) {
	c := NewClient("http://127.0.0.1:0")

	_, err := c.PlaceOrder(context.Background(), nil, MethodCOD, CardDetails{}, pricing.Totals{})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestClient_RefusesConcurrentSubmission(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	var enteredOnce sync.Once
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enteredOnce.Do(func() { close(entered) })
		<-release
		okOrderHandler(nil)(w, r)
	}))
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL)
	items := []Item{{ID: "A", Quantity: 1}}

	done := make(chan error, 1)
	go func() {
		_, err := c.PlaceOrder(context.Background(), items, MethodCOD, CardDetails{}, pricing.Totals{})
		done <- err
	}()

	<-entered

	_, err := c.PlaceOrder(context.Background(), items, MethodCOD, CardDetails{}, pricing.Totals{})
	assert.ErrorIs(t, err, ErrCheckoutInFlight)

	close(release)
	require.NoError(t, <-done)

	// The guard resets once the first call finishes.
	_, err = c.PlaceOrder(context.Background(), items, MethodCOD, CardDetails{}, pricing.Totals{})
	assert.NoError(t, err)
}

func TestClient_SurfacesServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid product id: ghost"}`))
	}))
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL)

	_, err := c.PlaceOrder(context.Background(),
		[]Item{{ID: "ghost", Quantity: 1}}, MethodCOD, CardDetails{}, pricing.Totals{})

	assert.ErrorIs(t, err, ErrCheckoutBadRequest)
	assert.Contains(t, err.Error(), "invalid product id: ghost")
}
