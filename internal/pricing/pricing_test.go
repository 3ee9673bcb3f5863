package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_PinnedValues(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		want     Totals
	}{
		{
			name:     "empty cart ships free and owes nothing",
			subtotal: 0,
			want:     Totals{SubtotalCents: 0, ShippingCents: 0, TaxCents: 0, TotalCents: 0},
		},
		{
			name:     "just under free shipping threshold",
			subtotal: 4999,
			want:     Totals{SubtotalCents: 4999, ShippingCents: 799, TaxCents: 400, TotalCents: 6198},
		},
		{
			name:     "at free shipping threshold",
			subtotal: 5000,
			want:     Totals{SubtotalCents: 5000, ShippingCents: 0, TaxCents: 400, TotalCents: 5400},
		},
		{
			name:     "small order pays flat shipping",
			subtotal: 100,
			want:     Totals{SubtotalCents: 100, ShippingCents: 799, TaxCents: 8, TotalCents: 907},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.subtotal))
		})
	}
}

func TestCompute_TaxRoundsHalfUp(t *testing.T) {
	// 7 * 8% = 0.56 cents, rounds up; 6 * 8% = 0.48 cents, rounds down.
	assert.Equal(t, int64(1), Compute(7).TaxCents)
	assert.Equal(t, int64(0), Compute(6).TaxCents)
}

func TestCompute_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, Compute(4999), Compute(4999))
	}
}
