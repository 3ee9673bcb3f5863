package cart

import "Storefront/internal/catalog"

// Line is a display-ready join of one cart entry with its catalog record.
type Line struct {
	ProductID  string `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// Project joins cart entries against a catalog snapshot. Entries whose id
// the catalog no longer carries are dropped from the output; the cart
// mapping itself is left alone, so a stale id reappears if the catalog
// ever serves it again.
func Project(entries []Entry, snapshot map[string]catalog.Product) []Line {
	lines := make([]Line, 0, len(entries))
	for _, e := range entries {
		p, ok := snapshot[e.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, Line{
			ProductID:  p.ID,
			Name:       p.Name,
			Image:      p.Image,
			PriceCents: p.PriceCents,
			Quantity:   e.Qty,
		})
	}
	return lines
}

// Subtotal is unit price times quantity summed across lines.
func Subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.PriceCents * int64(l.Quantity)
	}
	return sum
}
