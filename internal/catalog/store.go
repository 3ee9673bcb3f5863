package catalog

import "context"

// Product is the catalog record for a single sellable item. Records are
// immutable for the lifetime of the process; consumers only read them.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Image       string   `json:"image"`
	Sizes       []string `json:"sizes,omitempty"`
}

type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
}
