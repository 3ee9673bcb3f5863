// Package pricing computes shipping, tax, and the grand total from a
// subtotal. It is pure: same subtotal in, same totals out.
package pricing

const (
	flatShippingCents    = 799
	freeShippingMinCents = 5000

	// Tax is 8%, rounded half-up in integer math.
	taxRateNumerator   = 8
	taxRateDenominator = 100
)

type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// Compute derives totals for a non-negative subtotal. An empty cart
// (subtotal zero) ships free; so does anything at or over the free
// shipping threshold.
func Compute(subtotalCents int64) Totals {
	t := Totals{SubtotalCents: subtotalCents}

	if subtotalCents > 0 && subtotalCents < freeShippingMinCents {
		t.ShippingCents = flatShippingCents
	}

	t.TaxCents = roundHalfUp(subtotalCents*taxRateNumerator, taxRateDenominator)
	t.TotalCents = subtotalCents + t.ShippingCents + t.TaxCents

	return t
}

func roundHalfUp(numerator, denominator int64) int64 {
	return (numerator + denominator/2) / denominator
}
