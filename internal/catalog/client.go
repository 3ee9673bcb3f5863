package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("catalog product not found")
	ErrBadStatus   = errors.New("catalog bad status")
	ErrUnavailable = errors.New("catalog unavailable")
)

// Client is the single lookup contract every catalog consumer goes
// through: projection, checkout validation, and the shop CLI.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *Client) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := c.getJSON(ctx, fmt.Sprintf("%s/products/%s", c.BaseURL, id), &p)
	return p, err
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	var resp listResponse
	if err := c.getJSON(ctx, c.BaseURL+"/products", &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Snapshot loads the whole catalog into a lookup map for joins.
func (c *Client) Snapshot(ctx context.Context) (map[string]Product, error) {
	products, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[string]Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m, nil
}

// Ready probes the catalog's readiness endpoint.
func (c *Client) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/readyz", nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
