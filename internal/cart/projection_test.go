package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Storefront/internal/catalog"
)

func testSnapshot() map[string]catalog.Product {
	return map[string]catalog.Product{
		"a": {ID: "a", Name: "Alpha", Image: "a.jpg", PriceCents: 100},
		"b": {ID: "b", Name: "Beta", Image: "b.jpg", PriceCents: 250},
	}
}

func TestProject_JoinsAndOrders(t *testing.T) {
	entries := []Entry{
		{ProductID: "b", Qty: 1},
		{ProductID: "a", Qty: 2},
	}

	lines := Project(entries, testSnapshot())
	require.Len(t, lines, 2)

	assert.Equal(t, "b", lines[0].ProductID)
	assert.Equal(t, "Beta", lines[0].Name)
	assert.Equal(t, int64(250), lines[0].PriceCents)
	assert.Equal(t, 1, lines[0].Quantity)

	assert.Equal(t, "a", lines[1].ProductID)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestProject_DropsUnknownIDs(t *testing.T) {
	entries := []Entry{
		{ProductID: "a", Qty: 2},
		{ProductID: "gone", Qty: 5},
	}

	lines := Project(entries, testSnapshot())
	require.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0].ProductID)

	// The dropped entry contributes nothing to the subtotal.
	assert.Equal(t, int64(200), Subtotal(lines))
}

func TestProject_EmptyCart(t *testing.T) {
	lines := Project(nil, testSnapshot())
	assert.Empty(t, lines)
	assert.Zero(t, Subtotal(lines))
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{PriceCents: 100, Quantity: 2},
		{PriceCents: 250, Quantity: 1},
	}
	assert.Equal(t, int64(450), Subtotal(lines))
}
