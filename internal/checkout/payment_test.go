package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCard() CardDetails {
	return CardDetails{
		HolderName: "Ada Lovelace",
		Number:     "4242 4242 4242 4242",
		Expiry:     "12/28",
		CVC:        "123",
	}
}

func TestValidateCard_Valid(t *testing.T) {
	assert.NoError(t, ValidateCard(validCard()))

	hyphenated := validCard()
	hyphenated.Number = "4242-4242-4242-4242"
	assert.NoError(t, ValidateCard(hyphenated))

	fourDigitCVC := validCard()
	fourDigitCVC.CVC = "1234"
	assert.NoError(t, ValidateCard(fourDigitCVC))

	shortest := validCard()
	shortest.Number = "4222222222222" // 13 digits
	assert.NoError(t, ValidateCard(shortest))
}

func TestValidateCard_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CardDetails)
	}{
		{"empty name", func(d *CardDetails) { d.HolderName = "" }},
		{"number too short", func(d *CardDetails) { d.Number = "411111111111" }},
		{"number too long", func(d *CardDetails) { d.Number = "41111111111111111111" }},
		{"number with letters", func(d *CardDetails) { d.Number = "4242abcd42424242" }},
		{"expiry month 00", func(d *CardDetails) { d.Expiry = "00/28" }},
		{"expiry month 13", func(d *CardDetails) { d.Expiry = "13/28" }},
		{"expiry wrong shape", func(d *CardDetails) { d.Expiry = "1/28" }},
		{"cvc too short", func(d *CardDetails) { d.CVC = "12" }},
		{"cvc too long", func(d *CardDetails) { d.CVC = "12345" }},
		{"cvc non-digit", func(d *CardDetails) { d.CVC = "12a" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validCard()
			tt.mutate(&d)
			assert.ErrorIs(t, ValidateCard(d), ErrInvalidPaymentDetails)
		})
	}
}

func TestPaymentMethod_RequiresCard(t *testing.T) {
	assert.True(t, MethodCard.RequiresCard())
	assert.True(t, MethodStripe.RequiresCard())

	for _, m := range []PaymentMethod{MethodPayPal, MethodGooglePay, MethodApplePay, MethodCOD} {
		assert.False(t, m.RequiresCard(), string(m))
	}
}
