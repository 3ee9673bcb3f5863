package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"Storefront/internal/pricing"
)

// Item is one submitted order line.
type Item struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCheckoutInFlight   = errors.New("checkout already in flight")
	ErrCheckoutBadRequest = errors.New("checkout rejected")
	ErrCheckoutDown       = errors.New("checkout unavailable")
)

// Client submits orders for one view. It is the client-side gate of the
// checkout flow: payment details are validated locally and a second
// submission is refused while one is outstanding.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	inFlight atomic.Bool
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type submitBody struct {
	Items         []Item `json:"items"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Subtotal      int64  `json:"subtotal,omitempty"`
	Shipping      int64  `json:"shipping,omitempty"`
	Tax           int64  `json:"tax,omitempty"`
	Total         int64  `json:"total,omitempty"`
}

// PlaceOrder validates locally, then submits. The totals argument is what
// this view displayed to the shopper; the server treats it as advisory
// and prices the order itself.
func (c *Client) PlaceOrder(ctx context.Context, items []Item, method PaymentMethod, card CardDetails, totals pricing.Totals) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrCartEmpty
	}
	if method.RequiresCard() {
		if err := ValidateCard(card); err != nil {
			return Order{}, err
		}
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return Order{}, ErrCheckoutInFlight
	}
	defer c.inFlight.Store(false)

	body, err := json.Marshal(submitBody{
		Items:         items,
		PaymentMethod: string(method),
		Subtotal:      totals.SubtotalCents,
		Shipping:      totals.ShippingCents,
		Tax:           totals.TaxCents,
		Total:         totals.TotalCents,
	})
	if err != nil {
		return Order{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/checkout", bytes.NewReader(body))
	if err != nil {
		return Order{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Order{}, ErrCheckoutDown
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Order{}, err
	}

	if resp.StatusCode != http.StatusOK {
		var er struct {
			Error string `json:"error"`
		}
		if jsonErr := json.Unmarshal(raw, &er); jsonErr == nil && er.Error != "" {
			return Order{}, errors.Join(ErrCheckoutBadRequest, errors.New(er.Error))
		}
		return Order{}, ErrCheckoutBadRequest
	}

	var o Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}
