package catalog

import (
	"context"
	"sync"
)

type MemStore struct {
	mu    sync.RWMutex
	m     map[string]Product
	order []string
}

// NewMemStore builds an in-memory store. With no arguments it is seeded
// with the stock storefront catalog.
func NewMemStore(products ...Product) *MemStore {
	if len(products) == 0 {
		products = stockCatalog()
	}

	s := &MemStore{m: make(map[string]Product, len(products))}
	for _, p := range products {
		if _, dup := s.m[p.ID]; !dup {
			s.order = append(s.order, p.ID)
		}
		s.m[p.ID] = p
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.m[id])
	}
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}

func stockCatalog() []Product {
	return []Product{
		{
			ID:          "prod-basic-tee",
			Name:        "Basic Tee",
			Description: "Soft cotton tee in classic fit.",
			PriceCents:  15770,
			Image:       "/images/basic-tee.jpg",
			Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		},
		{
			ID:          "prod-denim-jacket",
			Name:        "Denim Jacket",
			Description: "Timeless denim for every season.",
			PriceCents:  57270,
			Image:       "/images/denim-jacket.jpg",
			Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		},
		{
			ID:          "prod-running-shoes",
			Name:        "Running Shoes",
			Description: "Lightweight and comfortable daily runners.",
			PriceCents:  65570,
			Image:       "/images/running-shoes.jpg",
			Sizes:       []string{"6", "7", "8", "9", "10", "11", "12"},
		},
		{
			ID:          "prod-headphones",
			Name:        "Wireless Headphones",
			Description: "Noise-cancelling over-ear headphones.",
			PriceCents:  107070,
			Image:       "/images/headphones.jpg",
		},
		{
			ID:          "prod-backpack",
			Name:        "Everyday Backpack",
			Description: "Durable and water-resistant commuter pack.",
			PriceCents:  44820,
			Image:       "/images/backpack.jpg",
		},
		{
			ID:          "prod-water-bottle",
			Name:        "Insulated Bottle",
			Description: "Keeps drinks cold for 24h, hot for 12h.",
			PriceCents:  19920,
			Image:       "/images/water-bottle.jpg",
		},
		{
			ID:          "prod-notebook",
			Name:        "Hardcover Notebook",
			Description: "Dot grid, 192 pages, lays flat.",
			PriceCents:  13280,
			Image:       "/images/notebook.jpg",
		},
		{
			ID:          "prod-mug",
			Name:        "Ceramic Mug",
			Description: "12oz matte finish ceramic mug.",
			PriceCents:  12450,
			Image:       "/images/mug.jpg",
		},
	}
}
