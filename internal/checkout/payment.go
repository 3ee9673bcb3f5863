package checkout

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PaymentMethod selects how the shopper intends to pay. Processing itself
// is simulated; only card-style methods require detail validation, and
// only on the client side before any network call.
type PaymentMethod string

const (
	MethodCard      PaymentMethod = "card"
	MethodStripe    PaymentMethod = "stripe"
	MethodPayPal    PaymentMethod = "paypal"
	MethodGooglePay PaymentMethod = "googlepay"
	MethodApplePay  PaymentMethod = "applepay"
	MethodCOD       PaymentMethod = "cod"
)

func (m PaymentMethod) RequiresCard() bool {
	return m == MethodCard || m == MethodStripe
}

// CardDetails are the card-style fields gated before submission.
type CardDetails struct {
	HolderName string `json:"name" validate:"required"`
	Number     string `json:"number" validate:"required,cardnumber"`
	Expiry     string `json:"expiry" validate:"required,cardexpiry"`
	CVC        string `json:"cvc" validate:"required,cardcvc"`
}

var ErrInvalidPaymentDetails = errors.New("invalid payment details")

var (
	cardNumberRe = regexp.MustCompile(`^[0-9]{13,19}$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cardCVCRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

var cardValidator = newCardValidator()

func newCardValidator() *validator.Validate {
	v := validator.New()

	mustRegister(v, "cardnumber", func(fl validator.FieldLevel) bool {
		return cardNumberRe.MatchString(stripSeparators(fl.Field().String()))
	})
	mustRegister(v, "cardexpiry", func(fl validator.FieldLevel) bool {
		return cardExpiryRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "cardcvc", func(fl validator.FieldLevel) bool {
		return cardCVCRe.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateCard checks card-style details: number 13-19 digits after
// stripping spaces and hyphens, expiry MM/YY, CVC 3-4 digits, non-empty
// cardholder name.
func ValidateCard(d CardDetails) error {
	if err := cardValidator.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidPaymentDetails, fieldName(verrs[0]))
		}
		return ErrInvalidPaymentDetails
	}
	return nil
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.StructField())
}

func stripSeparators(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(s)
}
